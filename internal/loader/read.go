package loader

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/avernik/doctrina/internal/law"
)

// reader holds the document-scoped symbol table. It is created per
// document and discarded once the Document is built, so loaded values
// carry no reference back to the raw records.
type reader struct {
	mentioned  map[string]map[string]any
	names      []string
	built      map[string]law.Factor
	entities   map[string]*law.Entity
	enactments map[string]*law.Enactment
}

func newReader() *reader {
	return &reader{
		mentioned:  make(map[string]map[string]any),
		built:      make(map[string]law.Factor),
		entities:   make(map[string]*law.Entity),
		enactments: make(map[string]*law.Enactment),
	}
}

// indexNames walks the raw document and registers every named record,
// inventing a name for each fact that lacks one so that a later record
// can reference it by restating its sentence. Names are sorted longest
// first so that a name containing another name is matched whole.
func (r *reader) indexNames(node any) {
	r.collectNames(node)
	sort.SliceStable(r.names, func(i, j int) bool {
		return len(r.names[i]) > len(r.names[j])
	})
}

func (r *reader) collectNames(node any) {
	switch v := node.(type) {
	case []any:
		for _, item := range v {
			r.collectNames(item)
		}
	case map[string]any:
		for key, value := range v {
			if key == "content" || key == "predicate" {
				continue
			}
			r.collectNames(value)
		}
		r.register(v)
	}
}

func (r *reader) register(rec map[string]any) {
	name := stringField(rec, "name")
	if name == "" {
		name = syntheticName(rec)
	}
	if name == "" || r.mentioned[name] != nil {
		return
	}
	copied := make(map[string]any, len(rec))
	for key, value := range rec {
		copied[key] = value
	}
	r.mentioned[name] = copied
	r.names = append(r.names, name)
}

// syntheticName names a fact record by its rendered sentence: slots
// filled with any string terms, braces stripped, "false " prefixed
// when the truth field is explicitly false.
func syntheticName(rec map[string]any) string {
	content := factContent(rec)
	if content == "" {
		return ""
	}
	for _, term := range asList(rec["terms"]) {
		if s, ok := term.(string); ok {
			content = strings.Replace(content, "{}", s, 1)
		}
	}
	if strings.Contains(content, "{}") {
		// A sentence with unfilled slots is no use as a name.
		return ""
	}
	content = strings.NewReplacer("{", "", "}", "").Replace(content)
	if truth, ok := rec["truth"].(bool); ok && !truth {
		content = "false " + content
	}
	return content
}

func factContent(rec map[string]any) string {
	if content := stringField(rec, "content"); content != "" {
		return content
	}
	if pred, ok := rec["predicate"].(map[string]any); ok {
		return stringField(pred, "content")
	}
	return ""
}

// factor resolves a raw factor node: either a name registered in the
// document or an inline record.
func (r *reader) factor(node any) (law.Factor, error) {
	switch v := node.(type) {
	case string:
		return r.factorByName(v)
	case map[string]any:
		return r.buildFactor(v)
	}
	return nil, fmt.Errorf("a factor must be a name or a mapping, not %T", node)
}

func (r *reader) factorByName(name string) (law.Factor, error) {
	if f, ok := r.built[name]; ok {
		return f, nil
	}
	rec, ok := r.mentioned[name]
	if !ok {
		return nil, fmt.Errorf("name %q not found in the document's index", name)
	}
	return r.buildFactor(rec)
}

func (r *reader) buildFactor(rec map[string]any) (law.Factor, error) {
	tag := strings.ToLower(stringField(rec, "type"))
	if tag == "" {
		if factContent(rec) != "" {
			tag = "fact"
		} else {
			return nil, fmt.Errorf("factor record has no type tag and no content")
		}
	}
	var (
		f   law.Factor
		err error
	)
	switch tag {
	case "entity":
		f, err = r.entity(rec)
	case "fact":
		f, err = r.fact(rec)
	case "exhibit":
		f, err = r.exhibit(rec)
	case "evidence":
		f, err = r.evidence(rec)
	case "pleading":
		f, err = r.pleading(rec)
	case "allegation":
		f, err = r.allegation(rec)
	default:
		return nil, fmt.Errorf("unknown factor type %q", tag)
	}
	if err != nil {
		return nil, err
	}
	if name := stringField(rec, "name"); name != "" {
		r.built[name] = f
	}
	return f, nil
}

// entity interns entities by name: every reference to one name within
// a document resolves to the same value.
func (r *reader) entity(rec map[string]any) (*law.Entity, error) {
	name := stringField(rec, "name")
	if name == "" {
		return nil, fmt.Errorf("an entity requires a name")
	}
	if e, ok := r.entities[name]; ok {
		return e, nil
	}
	e := &law.Entity{
		EntityName: name,
		Generic:    boolField(rec, "generic", true),
		Plural:     boolField(rec, "plural", false),
	}
	r.entities[name] = e
	return e, nil
}

func (r *reader) internEntity(name string) (*law.Entity, error) {
	if rec, ok := r.mentioned[name]; ok {
		if strings.EqualFold(stringField(rec, "type"), "entity") {
			return r.entity(rec)
		}
	}
	return r.entity(map[string]any{"name": name})
}

func (r *reader) fact(rec map[string]any) (*law.Fact, error) {
	fields := rec
	if pred, ok := rec["predicate"].(map[string]any); ok {
		fields = make(map[string]any, len(rec)+len(pred))
		for key, value := range pred {
			fields[key] = value
		}
		for key, value := range rec {
			if key != "predicate" {
				fields[key] = value
			}
		}
	}
	content := stringField(fields, "content")
	if content == "" {
		return nil, fmt.Errorf("a fact requires content")
	}
	termNodes := asList(fields["terms"])

	content, termNodes = expandBraces(content, termNodes)
	content, termNodes = r.expandMentioned(content, termNodes)

	comparison := stringField(fields, "comparison")
	quantity, err := quantityField(fields)
	if err != nil {
		return nil, err
	}
	if quantity == nil {
		content, comparison, quantity, err = splitComparison(content)
		if err != nil {
			return nil, err
		}
	} else if comparison == "" {
		comparison = "="
	}

	truth, err := truthField(fields)
	if err != nil {
		return nil, err
	}
	reciprocal := boolField(fields, "reciprocal", false)

	var predicate *law.Predicate
	if quantity != nil {
		predicate, err = law.NewComparison(content, truth, reciprocal, comparison, *quantity)
	} else {
		predicate, err = law.NewPredicate(content, truth, reciprocal)
	}
	if err != nil {
		return nil, err
	}

	terms := make([]law.Factor, 0, len(termNodes))
	for _, node := range termNodes {
		term, err := r.term(node)
		if err != nil {
			return nil, err
		}
		terms = append(terms, term)
	}

	var opts []law.Option
	if name := stringField(rec, "name"); name != "" {
		opts = append(opts, law.Named(name))
	}
	if boolField(fields, "absent", false) {
		opts = append(opts, law.Absent())
	}
	if boolField(fields, "generic", false) {
		opts = append(opts, law.Generic())
	}
	if standard := stringField(fields, "standard_of_proof"); standard != "" {
		opts = append(opts, law.ProvedBy(standard))
	}
	return law.NewFact(predicate, terms, opts...)
}

// term resolves one context term: a registered name, an unregistered
// name treated as a new generic entity, or an inline record.
func (r *reader) term(node any) (law.Factor, error) {
	if name, ok := node.(string); ok {
		if _, registered := r.mentioned[name]; !registered {
			if _, built := r.built[name]; !built {
				return r.internEntity(name)
			}
		}
		return r.factorByName(name)
	}
	return r.factor(node)
}

var braceReference = regexp.MustCompile(`\{([^{}]+)\}`)

// expandBraces rewrites brace-wrapped entity references in content to
// bare slots, inserting an entity record at the term position matching
// the slot's position in the sentence.
func expandBraces(content string, terms []any) (string, []any) {
	var found []string
	for _, match := range braceReference.FindAllStringSubmatch(content, -1) {
		found = append(found, match[1])
	}
	sort.SliceStable(found, func(i, j int) bool { return len(found[i]) > len(found[j]) })
	for _, name := range found {
		wrapped := "{" + name + "}"
		for strings.Contains(content, wrapped) {
			position := strings.Count(content[:strings.Index(content, wrapped)], "{}")
			record := map[string]any{"type": "entity", "name": name}
			terms = insertTerm(terms, position, record)
			content = strings.Replace(content, wrapped, "{}", 1)
		}
	}
	return content, terms
}

// expandMentioned rewrites bare mentions of registered names in
// content to slots, longest name first.
func (r *reader) expandMentioned(content string, terms []any) (string, []any) {
	for _, name := range r.names {
		if name == content {
			continue
		}
		for strings.Contains(content, name) {
			position := strings.Count(content[:strings.Index(content, name)], "{}")
			terms = insertTerm(terms, position, name)
			content = strings.Replace(content, name, "{}", 1)
		}
	}
	return content, terms
}

func insertTerm(terms []any, position int, term any) []any {
	if position > len(terms) {
		position = len(terms)
	}
	out := make([]any, 0, len(terms)+1)
	out = append(out, terms[:position]...)
	out = append(out, term)
	return append(out, terms[position:]...)
}

// Longer operator tokens come first so ">=" is not read as "=".
var comparisonTokens = []string{"==", "!=", ">=", "<=", "<>", "=", ">", "<"}

// splitComparison splits a trailing comparison clause like
// ">= 5 millimetres" off the content text.
func splitComparison(content string) (string, string, *law.Quantity, error) {
	for _, token := range comparisonTokens {
		idx := strings.Index(content, token)
		if idx < 0 {
			continue
		}
		quantity, err := law.ParseQuantity(content[idx+len(token):])
		if err != nil {
			return "", "", nil, err
		}
		return strings.TrimSpace(content[:idx]), token, &quantity, nil
	}
	return content, "", nil, nil
}

func quantityField(rec map[string]any) (*law.Quantity, error) {
	switch v := rec["quantity"].(type) {
	case nil:
		return nil, nil
	case string:
		q, err := law.ParseQuantity(v)
		if err != nil {
			return nil, err
		}
		return &q, nil
	case int:
		return &law.Quantity{Value: float64(v)}, nil
	case float64:
		return &law.Quantity{Value: v}, nil
	}
	return nil, fmt.Errorf("quantity must be a string or number, not %T", rec["quantity"])
}

// truthField reads the tri-state truth value: a missing field asserts
// truth, an explicit null or "whether" leaves it undecided.
func truthField(rec map[string]any) (law.Truth, error) {
	value, present := rec["truth"]
	if !present {
		return law.TruthTrue, nil
	}
	switch v := value.(type) {
	case nil:
		return law.TruthUndecided, nil
	case bool:
		if v {
			return law.TruthTrue, nil
		}
		return law.TruthFalse, nil
	case string:
		switch strings.ToLower(v) {
		case "true":
			return law.TruthTrue, nil
		case "false":
			return law.TruthFalse, nil
		case "whether", "undecided":
			return law.TruthUndecided, nil
		}
	}
	return 0, fmt.Errorf("truth must be a bool, null, or \"whether\", not %v", value)
}

func (r *reader) exhibit(rec map[string]any) (*law.Exhibit, error) {
	statement, err := r.factField(rec, "statement")
	if err != nil {
		return nil, err
	}
	statedBy, err := r.entityField(rec, "stated_by")
	if err != nil {
		return nil, err
	}
	return law.NewExhibit(stringField(rec, "form"), statement, statedBy, factorOpts(rec)...), nil
}

func (r *reader) evidence(rec map[string]any) (*law.Evidence, error) {
	var exhibit *law.Exhibit
	if node, ok := rec["exhibit"]; ok && node != nil {
		f, err := r.factor(node)
		if err != nil {
			return nil, err
		}
		exhibit, ok = f.(*law.Exhibit)
		if !ok {
			return nil, fmt.Errorf("the exhibit of evidence must be an exhibit, not %T", f)
		}
	}
	toEffect, err := r.factField(rec, "to_effect")
	if err != nil {
		return nil, err
	}
	return law.NewEvidence(exhibit, toEffect, factorOpts(rec)...), nil
}

func (r *reader) pleading(rec map[string]any) (*law.Pleading, error) {
	filer, err := r.entityField(rec, "filer")
	if err != nil {
		return nil, err
	}
	return law.NewPleading(filer, factorOpts(rec)...), nil
}

func (r *reader) allegation(rec map[string]any) (*law.Allegation, error) {
	statement, err := r.factField(rec, "statement")
	if err != nil {
		return nil, err
	}
	var pleading *law.Pleading
	if node, ok := rec["pleading"]; ok && node != nil {
		f, err := r.factor(node)
		if err != nil {
			return nil, err
		}
		pleading, ok = f.(*law.Pleading)
		if !ok {
			return nil, fmt.Errorf("an allegation's pleading must be a pleading, not %T", f)
		}
	}
	return law.NewAllegation(statement, pleading, factorOpts(rec)...), nil
}

func (r *reader) factField(rec map[string]any, key string) (*law.Fact, error) {
	node, ok := rec[key]
	if !ok || node == nil {
		return nil, nil
	}
	f, err := r.factor(node)
	if err != nil {
		return nil, err
	}
	fact, ok := f.(*law.Fact)
	if !ok {
		return nil, fmt.Errorf("the %s field must be a fact, not %T", key, f)
	}
	return fact, nil
}

func (r *reader) entityField(rec map[string]any, key string) (*law.Entity, error) {
	node, ok := rec[key]
	if !ok || node == nil {
		return nil, nil
	}
	if name, isName := node.(string); isName {
		return r.internEntity(name)
	}
	f, err := r.factor(node)
	if err != nil {
		return nil, err
	}
	entity, ok := f.(*law.Entity)
	if !ok {
		return nil, fmt.Errorf("the %s field must be an entity, not %T", key, f)
	}
	return entity, nil
}

func factorOpts(rec map[string]any) []law.Option {
	var opts []law.Option
	if name := stringField(rec, "name"); name != "" {
		opts = append(opts, law.Named(name))
	}
	if boolField(rec, "absent", false) {
		opts = append(opts, law.Absent())
	}
	if boolField(rec, "generic", false) {
		opts = append(opts, law.Generic())
	}
	return opts
}

func (r *reader) enactment(node any) (*law.Enactment, error) {
	switch v := node.(type) {
	case string:
		if e, ok := r.enactments[v]; ok {
			return e, nil
		}
		rec, ok := r.mentioned[v]
		if !ok {
			return nil, fmt.Errorf("name %q not found in the document's index", v)
		}
		return r.buildEnactment(rec)
	case map[string]any:
		return r.buildEnactment(v)
	}
	return nil, fmt.Errorf("an enactment must be a name or a mapping, not %T", node)
}

func (r *reader) buildEnactment(rec map[string]any) (*law.Enactment, error) {
	source := stringField(rec, "source")
	if source == "" {
		return nil, fmt.Errorf("an enactment requires a source")
	}
	if !strings.HasPrefix(source, "/") && !strings.HasPrefix(source, "http") {
		source = "/" + source
	}
	source = strings.TrimRight(source, "/")
	text, err := selectExact(stringField(rec, "text"))
	if err != nil {
		return nil, err
	}
	if text == "" {
		text = stringField(rec, "exact")
	}
	e := &law.Enactment{Source: source, Text: text, Name: stringField(rec, "name")}
	if e.Name != "" {
		r.enactments[e.Name] = e
	}
	return e, nil
}

// selectExact reads the pipe shorthand "prefix|exact|suffix", keeping
// only the quoted passage.
func selectExact(text string) (string, error) {
	switch parts := strings.Split(text, "|"); len(parts) {
	case 1:
		return parts[0], nil
	case 3:
		return parts[1], nil
	}
	return "", fmt.Errorf(
		"enactment text must contain no pipe separator or exactly two, not %q", text)
}

func (r *reader) holding(node any) (*law.Holding, error) {
	rec, ok := node.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("a holding must be a mapping, not %T", node)
	}
	merged := flattenHolding(rec)

	groups := make([]law.FactorGroup, 3)
	for i, key := range []string{"outputs", "inputs", "despite"} {
		for _, factorNode := range asList(merged[key]) {
			f, err := r.factor(factorNode)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}
			groups[i] = append(groups[i], f)
		}
	}
	procedure, err := law.NewProcedure(groups[0], groups[1], groups[2])
	if err != nil {
		return nil, err
	}

	enactmentGroups := make([][]*law.Enactment, 2)
	for i, key := range []string{"enactments", "enactments_despite"} {
		for _, enactmentNode := range asList(merged[key]) {
			e, err := r.enactment(enactmentNode)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}
			enactmentGroups[i] = append(enactmentGroups[i], e)
		}
	}

	h := &law.Holding{
		Rule: &law.Rule{
			Procedure:         procedure,
			Enactments:        enactmentGroups[0],
			EnactmentsDespite: enactmentGroups[1],
			Mandatory:         boolField(merged, "mandatory", false),
			Universal:         boolField(merged, "universal", false),
			Generic:           boolField(merged, "generic", false),
			Name:              stringField(merged, "name"),
		},
		RuleValid: boolField(rec, "rule_valid", true),
		Decided:   boolField(rec, "decided", true),
		Exclusive: boolField(rec, "exclusive", false),
	}
	if err := h.Validate(); err != nil {
		return nil, err
	}
	return h, nil
}

// flattenHolding lifts fields nested under "rule" and "procedure" up
// to one level, so both the nested and the flat record forms load.
func flattenHolding(rec map[string]any) map[string]any {
	merged := make(map[string]any, len(rec))
	var lift func(m map[string]any)
	lift = func(m map[string]any) {
		for key, value := range m {
			if key == "rule" || key == "procedure" {
				if nested, ok := value.(map[string]any); ok {
					lift(nested)
					continue
				}
			}
			if _, taken := merged[key]; !taken {
				merged[key] = value
			}
		}
	}
	lift(rec)
	return merged
}
