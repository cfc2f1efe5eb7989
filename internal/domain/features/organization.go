package features

import "strings"

// Organization categories.
const (
	CategoryEducation   = "Education"
	CategoryFreelance   = "Freelance"
	CategoryGovernment  = "Government"
	CategoryHealthcare  = "Healthcare"
	CategoryFinance     = "Finance"
	CategoryRetail      = "Retail"
	CategoryLogistics   = "Logistics"
	CategoryUtilities   = "Utilities"
	CategoryIndustry    = "Industry"
	CategoryHospitality = "Hospitality"
	CategoryServices    = "Services"
	CategoryAgriculture = "Agriculture"
	CategoryTech        = "Tech"
	CategoryCulture     = "Culture"
	CategoryOther       = "Other"
)

// categoryRule matches an organization type by exact value or by family substring.
type categoryRule struct {
	category string
	exact    []string
	families []string
}

func (r categoryRule) matches(orgType string) bool {
	for _, v := range r.exact {
		if orgType == v {
			return true
		}
	}
	for _, f := range r.families {
		if strings.Contains(orgType, f) {
			return true
		}
	}
	return false
}

// Evaluated in order; first match wins.
var categoryRules = []categoryRule{
	{category: CategoryEducation, exact: []string{"Kindergarten", "School", "University"}},
	{category: CategoryFreelance, exact: []string{"Self-employed"}},
	{category: CategoryGovernment, exact: []string{"Government", "Military", "Police", "Security Ministries", "Postal", "Emergency"}},
	{category: CategoryHealthcare, exact: []string{"Medicine", "Social Services"}},
	{category: CategoryFinance, exact: []string{"Bank", "Insurance", "Legal Services"}},
	{category: CategoryRetail, exact: []string{"Realtor"}, families: []string{"Trade: type"}},
	{category: CategoryLogistics, exact: []string{"Telecom"}, families: []string{"Transport: type"}},
	{category: CategoryUtilities, exact: []string{"Electricity"}, families: []string{"Water Supply", "Waste Management"}},
	{category: CategoryIndustry, exact: []string{"Construction"}, families: []string{"Industry: type"}},
	{category: CategoryHospitality, exact: []string{"Restaurant", "Hotel"}},
	{category: CategoryServices, exact: []string{"Advertising", "Cleaning", "Services", "Security"}},
	{category: CategoryAgriculture, exact: []string{"Agriculture"}},
	{category: CategoryTech, exact: []string{"IT", "Mobile"}},
	{category: CategoryCulture, exact: []string{"Culture", "Religion"}},
}

// OrganizationCategory maps an organization type to its category. It is
// total: anything no rule claims is "Other".
func OrganizationCategory(orgType string) string {
	for _, r := range categoryRules {
		if r.matches(orgType) {
			return r.category
		}
	}
	return CategoryOther
}

// organizationTypes is the declared organization-type domain of the dataset.
var organizationTypes = []string{
	"Advertising", "Agriculture", "Bank",
	"Business Entity Type 1", "Business Entity Type 2", "Business Entity Type 3",
	"Cleaning", "Construction", "Culture", "Electricity", "Emergency", "Government",
	"Hotel", "Housing",
	"Industry: type 1", "Industry: type 2", "Industry: type 3", "Industry: type 4",
	"Industry: type 5", "Industry: type 6", "Industry: type 7", "Industry: type 8",
	"Industry: type 9", "Industry: type 10", "Industry: type 11", "Industry: type 12",
	"Industry: type 13",
	"Insurance", "Kindergarten", "Legal Services", "Medicine", "Military", "Mobile",
	"Other", "Police", "Postal", "Realtor", "Religion", "Restaurant", "School",
	"Security", "Security Ministries", "Self-employed", "Services", "Telecom",
	"Trade: type 1", "Trade: type 2", "Trade: type 3", "Trade: type 4",
	"Trade: type 5", "Trade: type 6", "Trade: type 7",
	"Transport: type 1", "Transport: type 2", "Transport: type 3", "Transport: type 4",
	"University", "XNA",
}

var knownOrganizationTypes = func() map[string]struct{} {
	m := make(map[string]struct{}, len(organizationTypes))
	for _, v := range organizationTypes {
		m[v] = struct{}{}
	}
	return m
}()

// OrganizationTypes returns a copy of the declared organization-type domain.
func OrganizationTypes() []string {
	out := make([]string, len(organizationTypes))
	copy(out, organizationTypes)
	return out
}

// IsKnownOrganizationType reports whether v belongs to the declared domain.
func IsKnownOrganizationType(v string) bool {
	_, ok := knownOrganizationTypes[v]
	return ok
}
