package models

import "fmt"

// Customer represents a synthetic policyholder's demographic profile
type Customer struct {
	CustomerID       string           `db:"customer_id"`
	Age              int              `db:"age"`
	Gender           Gender           `db:"gender"`
	MaritalStatus    MaritalStatus    `db:"marital_status"`
	Dependents       int              `db:"dependents"`
	IncomeBracket    IncomeBracket    `db:"income_bracket"`
	EmploymentStatus EmploymentStatus `db:"employment_status"`
	EducationLevel   EducationLevel   `db:"education_level"`
}

// CustomerIDFor formats the zero-padded identifier for the n-th customer (1-based)
func CustomerIDFor(n int) string {
	return fmt.Sprintf("CUST_%06d", n)
}

// Gender of a customer
type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
)

// MaritalStatus of a customer
type MaritalStatus string

const (
	MaritalStatusSingle   MaritalStatus = "Single"
	MaritalStatusMarried  MaritalStatus = "Married"
	MaritalStatusDivorced MaritalStatus = "Divorced"
	MaritalStatusWidowed  MaritalStatus = "Widowed"
)

// IncomeBracket drives the coverage range of a customer's policy
type IncomeBracket string

const (
	IncomeBracketLow      IncomeBracket = "Low"
	IncomeBracketMedium   IncomeBracket = "Medium"
	IncomeBracketHigh     IncomeBracket = "High"
	IncomeBracketVeryHigh IncomeBracket = "VeryHigh"
)

// EmploymentStatus of a customer
type EmploymentStatus string

const (
	EmploymentStatusEmployed     EmploymentStatus = "Employed"
	EmploymentStatusSelfEmployed EmploymentStatus = "Self-employed"
	EmploymentStatusRetired      EmploymentStatus = "Retired"
	EmploymentStatusUnemployed   EmploymentStatus = "Unemployed"
)

// EducationLevel of a customer
type EducationLevel string

const (
	EducationLevelHighSchool EducationLevel = "HighSchool"
	EducationLevelBachelor   EducationLevel = "Bachelor"
	EducationLevelMaster     EducationLevel = "Master"
	EducationLevelPhD        EducationLevel = "PhD"
)
