package model

import "strings"

// FieldType is the value type of a payment field, driving import conversion.
type FieldType int

const (
	TextType FieldType = iota
	DateType
	NumberType
	BoolType
)

func (t FieldType) String() string {
	switch t {
	case DateType:
		return "date"
	case NumberType:
		return "number"
	case BoolType:
		return "boolean"
	default:
		return "text"
	}
}

// Field is a payment field that a spreadsheet column can be mapped to.
type Field string

const (
	FieldNone         Field = ""
	FieldMilestone    Field = "milestone"
	FieldDueDate      Field = "dueDate"
	FieldAmount       Field = "amount"
	FieldCumulative   Field = "cumulative"
	FieldCovered      Field = "covered"
	FieldTransferred  Field = "transferred"
	FieldTotalCovered Field = "totalCovered"
	FieldRemaining    Field = "remaining"
)

// Fields lists every mappable field in export column order.
var Fields = []Field{
	FieldMilestone,
	FieldDueDate,
	FieldAmount,
	FieldCumulative,
	FieldCovered,
	FieldTransferred,
	FieldTotalCovered,
	FieldRemaining,
}

var fieldLabels = map[Field]string{
	FieldMilestone:    "Milestone",
	FieldDueDate:      "Due Date",
	FieldAmount:       "Amount",
	FieldCumulative:   "Cumulative",
	FieldCovered:      "Covered",
	FieldTransferred:  "Transferred",
	FieldTotalCovered: "Total Covered",
	FieldRemaining:    "Remaining",
}

// Label returns the column header used for the field in exports.
func (f Field) Label() string {
	return fieldLabels[f]
}

// Type returns the value type of the field.
func (f Field) Type() FieldType {
	switch f {
	case FieldDueDate:
		return DateType
	case FieldAmount, FieldCumulative, FieldTransferred, FieldTotalCovered, FieldRemaining:
		return NumberType
	case FieldCovered:
		return BoolType
	default:
		return TextType
	}
}

// Required reports whether a payment cannot be created without the field.
func (f Field) Required() bool {
	return f == FieldMilestone || f == FieldDueDate || f == FieldAmount
}

// ParseField resolves a field from its name or export label, ignoring case,
// spaces, underscores and dashes. "Paid" style aliases are not guessed.
func ParseField(s string) (Field, bool) {
	key := foldKey(s)
	if key == "" {
		return FieldNone, false
	}
	for _, f := range Fields {
		if foldKey(string(f)) == key || foldKey(f.Label()) == key {
			return f, true
		}
	}
	return FieldNone, false
}

func foldKey(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch r {
		case ' ', '_', '-', '\t':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
