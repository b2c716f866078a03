package loan

import (
	"loanscreen/ml"
)

// Column names the model was fit on.
const (
	ColHomeOwnership       = "person_home_ownership"
	ColIncome              = "person_income"
	ColInterestRate        = "loan_int_rate"
	ColCreditHistoryLength = "cb_person_cred_hist_length"
	ColLoanAmount          = "loan_amnt"
	ColAge                 = "person_age"
	ColLoanGrade           = "loan_grade"
	ColDefaultOnFile       = "cb_person_default_on_file"
	ColLoanIntent          = "loan_intent"
	ColEmploymentLength    = "person_emp_length"
	ColPercentIncome       = "loan_percent_income"
)

// FieldIncome is the form key carrying the applicant income. Every other form
// key is the column name itself.
const FieldIncome = "applicant_income"

// Application is one applicant's normalized attributes. It lives for a
// single request.
type Application struct {
	HomeOwnership       string
	Income              float64
	InterestRate        float64
	CreditHistoryLength int
	LoanAmount          float64
	Age                 int
	LoanGrade           string
	DefaultOnFile       string
	LoanIntent          string
	EmploymentLength    int
	PercentIncome       float64
}

// Columns returns the column order of the frame handed to the model.
func Columns() []string {
	return []string{
		ColHomeOwnership,
		ColIncome,
		ColInterestRate,
		ColCreditHistoryLength,
		ColLoanAmount,
		ColAge,
		ColLoanGrade,
		ColDefaultOnFile,
		ColLoanIntent,
		ColEmploymentLength,
		ColPercentIncome,
	}
}

// Values returns the application's values in Columns order.
func (a *Application) Values() []any {
	return []any{
		a.HomeOwnership,
		a.Income,
		a.InterestRate,
		a.CreditHistoryLength,
		a.LoanAmount,
		a.Age,
		a.LoanGrade,
		a.DefaultOnFile,
		a.LoanIntent,
		a.EmploymentLength,
		a.PercentIncome,
	}
}

// Frame builds the single-row table for the model.
func (a *Application) Frame() (*ml.Frame, error) {
	frame := ml.NewFrame(Columns()...)
	if err := frame.Append(a.Values()...); err != nil {
		return nil, err
	}
	return frame, nil
}
