package loader

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/avernik/doctrina/internal/law"
)

// FactorRecord is the serialized form of one factor. Which fields are
// set depends on the type tag; fields left at their load-time defaults
// are omitted.
type FactorRecord struct {
	Type            string          `json:"type,omitempty" yaml:"type,omitempty"`
	Name            string          `json:"name,omitempty" yaml:"name,omitempty"`
	Generic         *bool           `json:"generic,omitempty" yaml:"generic,omitempty"`
	Plural          bool            `json:"plural,omitempty" yaml:"plural,omitempty"`
	Absent          bool            `json:"absent,omitempty" yaml:"absent,omitempty"`
	Content         string          `json:"content,omitempty" yaml:"content,omitempty"`
	Truth           any             `json:"truth,omitempty" yaml:"truth,omitempty"`
	Reciprocal      bool            `json:"reciprocal,omitempty" yaml:"reciprocal,omitempty"`
	Comparison      string          `json:"comparison,omitempty" yaml:"comparison,omitempty"`
	Quantity        string          `json:"quantity,omitempty" yaml:"quantity,omitempty"`
	StandardOfProof string          `json:"standard_of_proof,omitempty" yaml:"standard_of_proof,omitempty"`
	Terms           []*FactorRecord `json:"terms,omitempty" yaml:"terms,omitempty"`
	Form            string          `json:"form,omitempty" yaml:"form,omitempty"`
	Statement       *FactorRecord   `json:"statement,omitempty" yaml:"statement,omitempty"`
	StatedBy        *FactorRecord   `json:"stated_by,omitempty" yaml:"stated_by,omitempty"`
	Exhibit         *FactorRecord   `json:"exhibit,omitempty" yaml:"exhibit,omitempty"`
	ToEffect        *FactorRecord   `json:"to_effect,omitempty" yaml:"to_effect,omitempty"`
	Filer           *FactorRecord   `json:"filer,omitempty" yaml:"filer,omitempty"`
	Pleading        *FactorRecord   `json:"pleading,omitempty" yaml:"pleading,omitempty"`
}

// EnactmentRecord is the serialized form of one enactment.
type EnactmentRecord struct {
	Name   string `json:"name,omitempty" yaml:"name,omitempty"`
	Source string `json:"source" yaml:"source"`
	Text   string `json:"text,omitempty" yaml:"text,omitempty"`
}

// HoldingRecord is the serialized form of one holding, flattened: the
// rule and procedure fields sit alongside the posture flags.
type HoldingRecord struct {
	Outputs           []*FactorRecord    `json:"outputs,omitempty" yaml:"outputs,omitempty"`
	Inputs            []*FactorRecord    `json:"inputs,omitempty" yaml:"inputs,omitempty"`
	Despite           []*FactorRecord    `json:"despite,omitempty" yaml:"despite,omitempty"`
	Enactments        []*EnactmentRecord `json:"enactments,omitempty" yaml:"enactments,omitempty"`
	EnactmentsDespite []*EnactmentRecord `json:"enactments_despite,omitempty" yaml:"enactments_despite,omitempty"`
	Mandatory         bool               `json:"mandatory,omitempty" yaml:"mandatory,omitempty"`
	Universal         bool               `json:"universal,omitempty" yaml:"universal,omitempty"`
	RuleValid         *bool              `json:"rule_valid,omitempty" yaml:"rule_valid,omitempty"`
	Decided           *bool              `json:"decided,omitempty" yaml:"decided,omitempty"`
	Exclusive         bool               `json:"exclusive,omitempty" yaml:"exclusive,omitempty"`
}

// DocumentRecord is the serialized form of a whole document.
type DocumentRecord struct {
	Factors    []*FactorRecord    `json:"factors,omitempty" yaml:"factors,omitempty"`
	Enactments []*EnactmentRecord `json:"enactments,omitempty" yaml:"enactments,omitempty"`
	Holdings   []*HoldingRecord   `json:"holdings,omitempty" yaml:"holdings,omitempty"`
}

// DumpYAML serializes a document to YAML in the same record form the
// loader reads.
func DumpYAML(doc *Document) ([]byte, error) {
	record, err := documentRecord(doc)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(record)
}

// DumpJSON serializes a document to indented JSON.
func DumpJSON(doc *Document) ([]byte, error) {
	record, err := documentRecord(doc)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(record, "", "  ")
}

func documentRecord(doc *Document) (*DocumentRecord, error) {
	out := &DocumentRecord{}
	for _, f := range doc.Factors {
		record, err := factorRecord(f)
		if err != nil {
			return nil, err
		}
		out.Factors = append(out.Factors, record)
	}
	for _, e := range doc.Enactments {
		out.Enactments = append(out.Enactments, enactmentRecord(e))
	}
	for _, h := range doc.Holdings {
		record, err := holdingRecord(h)
		if err != nil {
			return nil, err
		}
		out.Holdings = append(out.Holdings, record)
	}
	return out, nil
}

func holdingRecord(h *law.Holding) (*HoldingRecord, error) {
	record := &HoldingRecord{
		Mandatory: h.Rule.Mandatory,
		Universal: h.Rule.Universal,
		Exclusive: h.Exclusive,
	}
	if !h.RuleValid {
		record.RuleValid = boolPtr(false)
	}
	if !h.Decided {
		record.Decided = boolPtr(false)
	}
	groups := []struct {
		factors law.FactorGroup
		out     *[]*FactorRecord
	}{
		{h.Rule.Procedure.Outputs(), &record.Outputs},
		{h.Rule.Procedure.Inputs(), &record.Inputs},
		{h.Rule.Procedure.Despite(), &record.Despite},
	}
	for _, group := range groups {
		for _, f := range group.factors {
			fr, err := factorRecord(f)
			if err != nil {
				return nil, err
			}
			*group.out = append(*group.out, fr)
		}
	}
	for _, e := range h.Rule.Enactments {
		record.Enactments = append(record.Enactments, enactmentRecord(e))
	}
	for _, e := range h.Rule.EnactmentsDespite {
		record.EnactmentsDespite = append(record.EnactmentsDespite, enactmentRecord(e))
	}
	return record, nil
}

func enactmentRecord(e *law.Enactment) *EnactmentRecord {
	return &EnactmentRecord{Name: e.Name, Source: e.Source, Text: e.Text}
}

func factorRecord(f law.Factor) (*FactorRecord, error) {
	switch v := f.(type) {
	case *law.Entity:
		record := &FactorRecord{Type: "entity", Name: v.EntityName, Plural: v.Plural}
		if !v.Generic {
			record.Generic = boolPtr(false)
		}
		return record, nil
	case *law.Fact:
		return factRecord(v)
	case *law.Exhibit:
		record := &FactorRecord{Type: "exhibit", Form: v.Form()}
		applyShared(record, f)
		if statement := v.Statement(); statement != nil {
			var err error
			if record.Statement, err = factorRecord(statement); err != nil {
				return nil, err
			}
		}
		if statedBy := v.StatedBy(); statedBy != nil {
			var err error
			if record.StatedBy, err = factorRecord(statedBy); err != nil {
				return nil, err
			}
		}
		return record, nil
	case *law.Evidence:
		record := &FactorRecord{Type: "evidence"}
		applyShared(record, f)
		if exhibit := v.Exhibit(); exhibit != nil {
			var err error
			if record.Exhibit, err = factorRecord(exhibit); err != nil {
				return nil, err
			}
		}
		if toEffect := v.ToEffect(); toEffect != nil {
			var err error
			if record.ToEffect, err = factorRecord(toEffect); err != nil {
				return nil, err
			}
		}
		return record, nil
	case *law.Pleading:
		record := &FactorRecord{Type: "pleading"}
		applyShared(record, f)
		if filer := v.Filer(); filer != nil {
			var err error
			if record.Filer, err = factorRecord(filer); err != nil {
				return nil, err
			}
		}
		return record, nil
	case *law.Allegation:
		record := &FactorRecord{Type: "allegation"}
		applyShared(record, f)
		if statement := v.Statement(); statement != nil {
			var err error
			if record.Statement, err = factorRecord(statement); err != nil {
				return nil, err
			}
		}
		if pleading := v.Pleading(); pleading != nil {
			var err error
			if record.Pleading, err = factorRecord(pleading); err != nil {
				return nil, err
			}
		}
		return record, nil
	}
	return nil, fmt.Errorf("no record form for factor type %T", f)
}

func factRecord(v *law.Fact) (*FactorRecord, error) {
	predicate := v.Predicate()
	record := &FactorRecord{
		Type:            "fact",
		Content:         predicate.Content(),
		Reciprocal:      predicate.Reciprocal(),
		Comparison:      predicate.Comparison(),
		StandardOfProof: v.StandardOfProof(),
	}
	applyShared(record, v)
	switch predicate.Truth() {
	case law.TruthFalse:
		record.Truth = false
	case law.TruthUndecided:
		record.Truth = "whether"
	}
	if q := predicate.Quantity(); q != nil {
		record.Quantity = q.String()
	}
	for _, term := range v.Terms() {
		tr, err := factorRecord(term)
		if err != nil {
			return nil, err
		}
		record.Terms = append(record.Terms, tr)
	}
	return record, nil
}

func applyShared(record *FactorRecord, f law.Factor) {
	record.Name = f.Name()
	record.Absent = f.IsAbsent()
	if f.IsGeneric() {
		record.Generic = boolPtr(true)
	}
}

func boolPtr(b bool) *bool { return &b }
