package legis

import (
	"strings"
	"testing"
)

const constitutionHTML = `<!DOCTYPE html>
<html>
<head><title>Constitution of the United States</title></head>
<body>
<h1>Constitution of the United States</h1>
<section id="article-I-8-8">
  <p>To promote the Progress of Science and useful Arts, by securing
  for limited Times to Authors and Inventors the exclusive Right to
  their respective Writings and Discoveries;</p>
</section>
<section id="amendment-IV">
  <p>The right of the people to be secure in their persons, houses,
  papers, and effects, against unreasonable searches and seizures,
  shall not be violated, and no Warrants shall issue, but upon
  probable cause, supported by Oath or affirmation, and particularly
  describing the place to be searched, and the persons or things to
  be seized.</p>
</section>
</body>
</html>`

func readConstitution(t *testing.T) *Code {
	t.Helper()
	code, err := ReadCode("/us/const", strings.NewReader(constitutionHTML))
	if err != nil {
		t.Fatalf("ReadCode: %v", err)
	}
	return code
}

func TestReadCode_IndexesProvisions(t *testing.T) {
	code := readConstitution(t)
	if code.Title() != "Constitution of the United States" {
		t.Errorf("Expected the document title, got %q", code.Title())
	}
	text, err := code.ProvisionText("/us/const/amendment-IV")
	if err != nil {
		t.Fatalf("ProvisionText: %v", err)
	}
	if !strings.Contains(text, "unreasonable searches and seizures") {
		t.Errorf("Expected the amendment text indexed, got %q", text)
	}
	if strings.Contains(text, "\n") {
		t.Error("Expected whitespace normalized in the indexed text")
	}
}

func TestCode_ProvisionText_SlashPath(t *testing.T) {
	code := readConstitution(t)
	text, err := code.ProvisionText("/us/const/article-I/8/8")
	if err != nil {
		t.Fatalf("ProvisionText: %v", err)
	}
	if !strings.Contains(text, "Progress of Science") {
		t.Errorf("Expected the copyright clause, got %q", text)
	}
	if _, err := code.ProvisionText("/us/const/amendment-XCIX"); err == nil {
		t.Error("Expected error for an unknown provision")
	}
}

func TestCode_Select_Exact(t *testing.T) {
	code := readConstitution(t)
	enactment, err := code.Select("/us/const/amendment-IV", TextQuoteSelector{
		Exact: "unreasonable searches and seizures",
	})
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if enactment.Text != "unreasonable searches and seizures" {
		t.Errorf("Expected the exact passage, got %q", enactment.Text)
	}
	if enactment.Source != "/us/const/amendment-IV" {
		t.Errorf("Expected the citation path preserved, got %q", enactment.Source)
	}
}

func TestCode_Select_ExactIsCaseInsensitive(t *testing.T) {
	code := readConstitution(t)
	enactment, err := code.Select("/us/const/amendment-IV", TextQuoteSelector{
		Exact: "UNREASONABLE searches and seizures",
	})
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if enactment.Text != "unreasonable searches and seizures" {
		t.Errorf("Expected the provision's own casing in the passage, got %q", enactment.Text)
	}
}

func TestCode_Select_PrefixAndSuffix(t *testing.T) {
	code := readConstitution(t)
	enactment, err := code.Select("/us/const/amendment-IV", TextQuoteSelector{
		Prefix: "no Warrants shall issue, but upon",
		Suffix: ", supported by Oath",
	})
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if enactment.Text != "probable cause" {
		t.Errorf("Expected the passage between prefix and suffix, got %q", enactment.Text)
	}
}

func TestCode_Select_WholeProvision(t *testing.T) {
	code := readConstitution(t)
	enactment, err := code.Select("/us/const/amendment-IV", TextQuoteSelector{})
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if !strings.HasPrefix(enactment.Text, "The right of the people") {
		t.Errorf("Expected the whole provision, got %q", enactment.Text)
	}
}

func TestCode_Select_NotFound(t *testing.T) {
	code := readConstitution(t)
	if _, err := code.Select("/us/const/amendment-IV", TextQuoteSelector{
		Exact: "freedom of speech",
	}); err == nil {
		t.Error("Expected error for a passage the provision does not contain")
	}
	// The suffix has to follow the quote, not precede it.
	if _, err := code.Select("/us/const/amendment-IV", TextQuoteSelector{
		Exact:  "probable cause",
		Suffix: "unreasonable searches",
	}); err == nil {
		t.Error("Expected error when the suffix appears only before the quote")
	}
}

func TestCode_Select_WiderPassageImpliesNarrower(t *testing.T) {
	code := readConstitution(t)
	whole, err := code.Select("/us/const/amendment-IV", TextQuoteSelector{})
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	part, err := code.Select("/us/const/amendment-IV", TextQuoteSelector{
		Exact: "no Warrants shall issue, but upon probable cause",
	})
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if !whole.Implies(part) {
		t.Error("Expected the whole provision to imply a passage within it")
	}
	if part.Implies(whole) {
		t.Error("Expected a narrow passage not to imply the whole provision")
	}
}

func TestParseSelector(t *testing.T) {
	sel, err := ParseSelector("probable cause")
	if err != nil {
		t.Fatalf("ParseSelector: %v", err)
	}
	if sel.Exact != "probable cause" || sel.Prefix != "" || sel.Suffix != "" {
		t.Errorf("Expected a bare exact selector, got %+v", sel)
	}

	sel, err = ParseSelector("but upon|probable cause|, supported")
	if err != nil {
		t.Fatalf("ParseSelector: %v", err)
	}
	if sel.Prefix != "but upon" || sel.Exact != "probable cause" || sel.Suffix != ", supported" {
		t.Errorf("Expected prefix, exact, and suffix split on pipes, got %+v", sel)
	}

	if _, err := ParseSelector("one|two"); err == nil {
		t.Error("Expected error for a selector with a single pipe")
	}
}
