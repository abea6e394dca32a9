package cli

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/avdva/hdlnum"
	"github.com/avdva/hdlnum/fixbv"
)

// textBlock renders aligned "key: value" lines.
type textBlock struct {
	b strings.Builder
}

func (t *textBlock) add(key string, value interface{}) {
	fmt.Fprintf(&t.b, "%-9s%v\n", key+":", value)
}

func (t *textBlock) String() string {
	return strings.TrimSuffix(t.b.String(), "\n")
}

// IntReport describes a bit-vector.
type IntReport struct {
	Value  string `json:"value"`
	Min    string `json:"min,omitempty"`
	Max    string `json:"max,omitempty"`
	Width  int    `json:"width"`
	Bin    string `json:"bin"`
	Signed string `json:"signed,omitempty"`
	Wrap   bool   `json:"wrap,omitempty"`
}

func newIntReport(x *hdlnum.IntBV) IntReport {
	r := IntReport{
		Value: x.String(),
		Width: x.Len(),
		Bin:   x.Bin(),
		Wrap:  x.Wraps(),
	}
	if x.IsBounded() {
		r.Min, r.Max = x.Min().String(), x.Max().String()
	}
	if s, err := x.Signed(); err == nil {
		r.Signed = s.String()
	}
	return r
}

func (r IntReport) addTo(t *textBlock) {
	t.add("value", r.Value)
	if r.Min != "" {
		t.add("range", fmt.Sprintf("[%s, %s)", r.Min, r.Max))
	}
	t.add("width", r.Width)
	t.add("bin", r.Bin)
	if r.Signed != "" {
		t.add("signed", r.Signed)
	}
	if r.Wrap {
		t.add("wrap", r.Wrap)
	}
}

func (r IntReport) String() string {
	var t textBlock
	r.addTo(&t)
	return t.String()
}

// SliceReport describes a slice of a bit-vector.
type SliceReport struct {
	Slice string `json:"slice"`
	IntReport
}

func (r SliceReport) String() string {
	var t textBlock
	t.add("slice", r.Slice)
	r.IntReport.addTo(&t)
	return t.String()
}

// FixReport describes a fixed-point value.
type FixReport struct {
	Stored  string `json:"stored"`
	Shift   int    `json:"shift"`
	Value   string `json:"value"`
	Text    string `json:"text"`
	Min     string `json:"min,omitempty"`
	Max     string `json:"max,omitempty"`
	Width   int    `json:"width"`
	Bin     string `json:"bin"`
	Snapped bool   `json:"snapped,omitempty"`
}

func newFixReport(x *fixbv.FixBV) FixReport {
	r := FixReport{
		Stored:  x.StoredInt().String(),
		Shift:   x.Shift(),
		Value:   x.Decimal().String(),
		Text:    x.String(),
		Width:   x.Len(),
		Bin:     x.Bin(),
		Snapped: x.Snapped(),
	}
	if x.IsBounded() {
		stored := x.Stored()
		r.Min, r.Max = decimalString(stored.Min(), x.Shift()), decimalString(stored.Max(), x.Shift())
	}
	return r
}

func decimalString(si *big.Int, shift int) string {
	v, err := fixbv.New(si, shift)
	if err != nil {
		return si.String()
	}
	return v.Decimal().String()
}

func (r FixReport) String() string {
	var t textBlock
	t.add("stored", r.Stored)
	t.add("shift", r.Shift)
	t.add("value", r.Value)
	t.add("text", r.Text)
	if r.Min != "" {
		t.add("range", fmt.Sprintf("[%s, %s)", r.Min, r.Max))
	}
	t.add("width", r.Width)
	t.add("bin", r.Bin)
	if r.Snapped {
		t.add("snapped", r.Snapped)
	}
	return t.String()
}

// CheckResult is the outcome of a single declaration.
type CheckResult struct {
	Name  string `json:"name"`
	Kind  string `json:"kind"`
	OK    bool   `json:"ok"`
	Value string `json:"value,omitempty"`
	Code  string `json:"code,omitempty"`
	Error string `json:"error,omitempty"`
}

// CheckReport is the outcome of a declarations file.
type CheckReport struct {
	Results []CheckResult `json:"results"`
	Failed  int           `json:"failed"`
}

func (r CheckReport) String() string {
	var b strings.Builder
	for _, res := range r.Results {
		if res.OK {
			fmt.Fprintf(&b, "ok   %s: %s\n", res.Name, res.Value)
		} else {
			fmt.Fprintf(&b, "FAIL %s: [%s] %s\n", res.Name, res.Code, res.Error)
		}
	}
	fmt.Fprintf(&b, "%d declarations, %d failed", len(r.Results), r.Failed)
	return b.String()
}
