package loan

import (
	"net/url"
	"strconv"
	"strings"
)

// Form gives presence-aware access to submitted fields.
type Form interface {
	// Lookup returns the first value submitted for field and whether the
	// field was present at all.
	Lookup(field string) (string, bool)
	// Len is the number of distinct fields submitted.
	Len() int
}

// FormValues adapts url.Values to Form.
type FormValues url.Values

func (f FormValues) Lookup(field string) (string, bool) {
	values, ok := f[field]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[0], true
}

func (f FormValues) Len() int {
	return len(f)
}

// NumericFields lists the numeric form keys in validation order.
func NumericFields() []string {
	return []string{
		FieldIncome,
		ColLoanAmount,
		ColInterestRate,
		ColCreditHistoryLength,
		ColAge,
		ColEmploymentLength,
		ColPercentIncome,
	}
}

// CategoricalFields lists the required form keys in the order missing
// fields are reported.
func CategoricalFields() []string {
	return []string{
		ColHomeOwnership,
		ColLoanGrade,
		ColDefaultOnFile,
		ColLoanIntent,
	}
}

// Normalize coerces a submitted form into an Application. Absent or empty
// numeric fields default to zero; categorical fields are required.
func Normalize(form Form) (*Application, error) {
	app := &Application{}

	var invalid []string
	readFloat := func(field string, dst *float64) {
		raw, ok := form.Lookup(field)
		if !ok || raw == "" {
			*dst = 0
			return
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			invalid = append(invalid, field)
			return
		}
		*dst = v
	}
	readInt := func(field string, dst *int) {
		raw, ok := form.Lookup(field)
		if !ok || raw == "" {
			*dst = 0
			return
		}
		v, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			invalid = append(invalid, field)
			return
		}
		*dst = v
	}

	readFloat(FieldIncome, &app.Income)
	readFloat(ColLoanAmount, &app.LoanAmount)
	readFloat(ColInterestRate, &app.InterestRate)
	readInt(ColCreditHistoryLength, &app.CreditHistoryLength)
	readInt(ColAge, &app.Age)
	readInt(ColEmploymentLength, &app.EmploymentLength)
	readFloat(ColPercentIncome, &app.PercentIncome)

	if len(invalid) > 0 {
		return nil, &Error{
			Kind:    KindInvalidNumericInput,
			Message: msgInvalidNumeric,
			Fields:  invalid,
		}
	}

	var missing []string
	readCategory := func(field string, dst *string) {
		raw, ok := form.Lookup(field)
		if !ok || raw == "" {
			missing = append(missing, field)
			return
		}
		*dst = raw
	}

	readCategory(ColHomeOwnership, &app.HomeOwnership)
	readCategory(ColLoanGrade, &app.LoanGrade)
	readCategory(ColDefaultOnFile, &app.DefaultOnFile)
	readCategory(ColLoanIntent, &app.LoanIntent)

	if len(missing) > 0 {
		return nil, &Error{
			Kind:    KindMissingCategoricalField,
			Message: msgMissingFields + strings.Join(missing, ", "),
			Fields:  missing,
		}
	}

	return app, nil
}
