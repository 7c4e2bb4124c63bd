package extract

import (
	"testing"

	"github.com/MeKo-Tech/claimlens/internal/document"
	"github.com/MeKo-Tech/claimlens/internal/section"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const partALabeledPage = `DocuSign Envelope ID: 12AB-34CD
WorldTrips Claimant Statement
Page 1 of 11
1A. Claimant's Full Name: Maria Santos
2A. Gender: Female
3A. Date of Birth: 4/12/1998
4A. Current Mailing Address: 12 Oak Street 5A. City: Winchester 6A. State: MA
7A. Postal Code: 01890
8A. Country: USA
9A. Primary Telephone: 6175550199
11A. Email Address: maria.santos@example.com
12A. Policy Number: 245549351
15A. Countries Visited: England, Turkey`

func TestExtractPartALabeled(t *testing.T) {
	e := newTestExtractor(t)
	fields := e.extractPartA(partALabeledPage)

	assert.Equal(t, "Maria Santos", fields["1a_claimant_full_name"])
	assert.Equal(t, "Female", fields["2a_gender"])
	assert.Equal(t, "04/12/1998", fields["3a_date_of_birth_mm_dd_yy"])
	assert.Equal(t, "12 Oak Street", fields["4a_current_mailing_address"])
	assert.Equal(t, "Winchester", fields["5a_city"])
	assert.Equal(t, "MA", fields["6a_state"])
	assert.Equal(t, "01890", fields["7a_postal_code"])
	assert.Equal(t, "USA", fields["8a_country"])
	assert.Equal(t, "6175550199", fields["9a_primary_telephone"])
	assert.Nil(t, fields["10a_secondary_telephone"])
	assert.Equal(t, "maria.santos@example.com", fields["11a_email_address"])
	assert.Equal(t, "245549351", fields["12a_policy_or_certificate_number"])
	assert.Equal(t, "USA", fields["13a_citizenship"])
	assert.Equal(t, "USA", fields["14a_home_country"])
	assert.Equal(t, "England, Turkey", fields["15a_countries_visited"])
}

// Degraded recognition drops the field labels; the positional and
// shape-based fallbacks still recover the address block.
const partADegradedPage = `WORLDTRIPS CLAIMANT STATEMENT
Female
Maria Santos
12 Oak Street
Winchester
MA USA
01890
245549351
6175550199Authorization to release records
4/12/1998`

func TestExtractPartAFallbacks(t *testing.T) {
	e := newTestExtractor(t)
	fields := e.extractPartA(partADegradedPage)

	assert.Equal(t, "Maria Santos", fields["1a_claimant_full_name"])
	assert.Equal(t, "Female", fields["2a_gender"])
	assert.Equal(t, "04/12/1998", fields["3a_date_of_birth_mm_dd_yy"])
	assert.Equal(t, "12 Oak Street", fields["4a_current_mailing_address"])
	assert.Equal(t, "Winchester", fields["5a_city"])
	assert.Equal(t, "MA", fields["6a_state"])
	assert.Equal(t, "01890", fields["7a_postal_code"])
	assert.Equal(t, "6175550199", fields["9a_primary_telephone"])
	assert.Equal(t, "245549351", fields["12a_policy_or_certificate_number"])
	assert.Nil(t, fields["15a_countries_visited"])
}

// The issuer's own ZIP appears on every page; it must never win the
// postal-code field even when it is the only candidate.
func TestExtractPartAIssuerZIPExcluded(t *testing.T) {
	e := newTestExtractor(t)
	fields := e.extractPartA("PO Box 2005\nFarmington Hills MI 48333")
	assert.Nil(t, fields["7a_postal_code"])
}

const partAContinuedPage = `Are you a full-time student? Name of School:
Address of School:
X190 Winter Street
Boston
MA
02115
USA
New England Conservatory High School
Employed X
Other insurance`

func TestExtractPartAContinued(t *testing.T) {
	e := newTestExtractor(t)
	fields := e.extractPartAContinued(partAContinuedPage)

	assert.Equal(t, "Yes", fields["16a_full_time_student"])
	assert.Equal(t, "New England Conservatory High School", fields["16a_school_name"])
	assert.Equal(t, "190 Winter Street", fields["16a_school_address"])
	assert.Equal(t, "Boston", fields["16a_school_city"])
	assert.Equal(t, "MA", fields["16a_school_state"])
	assert.Equal(t, "02115", fields["16a_school_postal_code"])
	assert.Equal(t, "USA", fields["16a_school_country"])
	assert.Equal(t, "Yes", fields["17a_employed"])
	assert.Equal(t, "No", fields["18a_other_insurance_coverage"])
}

func TestExtractPartB(t *testing.T) {
	e := newTestExtractor(t)
	fields := e.extractPartB(`1B. I am applying for:
Travel Delay
Lost Checked Luggage X
Trip Interruption
Other
2B. Incident: Flight cancelled due to storm`)

	applying, ok := fields["1b_applying_for"].(document.FieldMap)
	require.True(t, ok)
	assert.Equal(t, false, applying["travel_delay"])
	assert.Equal(t, true, applying["lost_checked_luggage"])
	assert.Equal(t, false, applying["trip_interruption"])
	assert.Equal(t, false, applying["emergency_quarantine_indemnity_benefit_covid_19"])
	assert.Equal(t, true, applying["other"])

	assert.Equal(t, "Flight cancelled due to storm", fields["2b_incident_details"])
}

func TestExtractPartBIncidentDefaults(t *testing.T) {
	e := newTestExtractor(t)

	// A blank incident line answers N/A.
	fields := e.extractPartB("1B. I am applying for:\nTravel Delay X")
	assert.Equal(t, "N/A", fields["2b_incident_details"])

	// The envelope footer sharing the incident line must not be mistaken
	// for written details.
	fields = e.extractPartB("2B. Incident:\nDocuSign Envelope ID: 12AB-34CD")
	assert.Equal(t, "N/A", fields["2b_incident_details"])
}

const partCPage = `PART C: MEDICAL INFORMATION
1C. Onset of illness: XJuly 8h
If accident, location: N/A
Describe symptoms: High fever and constant headache
2C. Same illness or injury X
3C. Motorized vehicle accident? No
4C. Any conditions or medication in the last 2 years? No
5C. Incident related to employment? No`

func TestExtractPartC(t *testing.T) {
	e := newTestExtractor(t)
	fields := e.extractPartC(partCPage)

	assert.Equal(t, "July 8th", fields["1c_onset_of_illness_or_date_time_of_injury"])
	assert.Nil(t, fields["1c_accident_location_if_any"], "written-in N/A becomes an explicit absence")
	assert.Equal(t, "High fever and constant headache", fields["1c_symptoms_description"])
	assert.Equal(t, "Yes", fields["2c_had_same_illness_or_injury_before"])
	assert.Equal(t, "No", fields["3c_motorized_vehicle_accident"])
	assert.Equal(t, "No", fields["4c_any_conditions_or_medication_last_2_years"])
	assert.Equal(t, "No", fields["5c_incident_related_to_employment"])
}

func TestExtractPartD(t *testing.T) {
	e := newTestExtractor(t)
	signatures := e.extractPartD(`PART D: AUTHORIZATION
Claimant Signature Date Print Name
7/9/2023Maria Santos
Insured Signature Date
7/9/2023`)

	assert.Equal(t, "07/09/2023", signatures["claimant_signature_date_mm_dd_yy"])
	assert.Equal(t, "07/09/2023", signatures["insured_signature_date_mm_dd_yy"])
	assert.Equal(t, "Maria Santos", signatures["printed_name"])
}

func TestExtractPartDUnsigned(t *testing.T) {
	e := newTestExtractor(t)
	signatures := e.extractPartD("PART D: AUTHORIZATION\nClaimant Signature Date Print Name")

	assert.Nil(t, signatures["claimant_signature_date_mm_dd_yy"])
	assert.Nil(t, signatures["insured_signature_date_mm_dd_yy"])
	assert.Nil(t, signatures["printed_name"])
}

// Interleaved column text: dates anchor the rows, amounts arrive in
// reverse row order, the shared provider fills every row.
const supplementAPage = `Itemization of expenses
07/19/2023
07/21/2023
ACIBADEM HospitalACIBADEM Hospital
Examination and tests
Medication
Upper respiratory virus
TL (Turkish Lira)
Turkey
480.50
1250.00`

func TestExtractSupplementAAligned(t *testing.T) {
	e := newTestExtractor(t)
	fields := e.extractSupplementA(supplementAPage)

	items, ok := fields["supplement_a_items"].([]document.FieldMap)
	require.True(t, ok)
	require.Len(t, items, 2)

	first := items[0]
	assert.Equal(t, "07/19/2023", first["date_of_service_mm_dd_yy"])
	assert.Equal(t, "ACIBADEM Hospital", first["provider"])
	assert.Equal(t, "virus", first["diagnosis"])
	assert.Equal(t, "Examination and tests", first["description_of_services"])
	assert.Equal(t, "TL (Turkish Lira)", first["currency"])
	assert.Equal(t, "Turkey", first["country"])
	assert.Equal(t, "1250.00", first["amount_charged"])

	second := items[1]
	assert.Equal(t, "07/21/2023", second["date_of_service_mm_dd_yy"])
	assert.Equal(t, "ACIBADEM Hospital", second["provider"])
	assert.Equal(t, "Medication", second["description_of_services"])
	assert.Equal(t, "480.50", second["amount_charged"])
}

func TestExtractSupplementBLineOriented(t *testing.T) {
	e := newTestExtractor(t)
	fields := e.extractSupplementB(`07/19/23
ACIBADEM Clinic
Upper respiratory virus
Consultation
Turkish Lira TL
350.00
Turkey`)

	items, ok := fields["supplement_b_items"].([]document.FieldMap)
	require.True(t, ok)
	require.Len(t, items, 1)

	item := items[0]
	assert.Equal(t, "07/19/2023", item["date_of_service_mm_dd_yy"])
	assert.Equal(t, "ACIBADEM Clinic", item["provider"])
	assert.Equal(t, "virus", item["diagnosis"])
	assert.Equal(t, "Consultation", item["description_of_services"])
	assert.Equal(t, "TL", item["currency"])
	assert.Equal(t, "350.00", item["amount_charged"])
	assert.Equal(t, "Turkey", item["country"])
}

func TestExtractSupplementBEmpty(t *testing.T) {
	e := newTestExtractor(t)
	fields := e.extractSupplementB("SUPPLEMENT B: ILLNESS OR INJURY\nNo expenses claimed.")

	items, ok := fields["supplement_b_items"].([]document.FieldMap)
	require.True(t, ok)
	assert.Empty(t, items)
}

func TestExtractSupplementC(t *testing.T) {
	e := newTestExtractor(t)
	fields := e.extractSupplementC(`SUPPLEMENT C: PAYMENT AUTHORIZATION
Beneficiary Name: Maria Santos
3. Email Address: maria.santos@example.com
Beneficiary Address: 12 Oak Street
City: Winchester
State: MA 01890
USA
Check X`)

	assert.Equal(t, "Maria Santos", fields["beneficiary_name"])
	assert.Equal(t, "maria.santos@example.com", fields["beneficiary_email"])
	assert.Equal(t, "12 Oak Street", fields["beneficiary_address"])
	assert.Equal(t, "Winchester", fields["beneficiary_city"])
	assert.Equal(t, "MA", fields["beneficiary_state"])
	assert.Equal(t, "01890", fields["beneficiary_postal_code"])
	assert.Equal(t, "USA", fields["beneficiary_country"])
	assert.Equal(t, "Check", fields["payment_type"])

	// Bank fields exist only for wire payouts.
	_, hasBank := fields["bank_name"]
	assert.False(t, hasBank)
}

func TestExtractSupplementCWire(t *testing.T) {
	e := newTestExtractor(t)
	fields := e.extractSupplementC(`Wire transfer selected
Bank Name: First National
Account Number: 12345678`)

	assert.Equal(t, "Wire", fields["payment_type"])
	assert.Equal(t, "First National", fields["bank_name"])
	assert.Equal(t, "12345678", fields["account_number"])
}

func TestExtractThirdParty(t *testing.T) {
	e := newTestExtractor(t)

	page := `SUPPLEMENT C: PAYMENT AUTHORIZATION
AUTHORIZATION FOR PAYMENT TO THIRD PARTY
Name: Acme Travel Assistance
Address: 9 Market Street
7/9/2023Maria Santos`

	third := e.extractThirdParty(page)
	assert.Equal(t, "Acme Travel Assistance", third["name"])
	assert.Equal(t, "9 Market Street", third["address"])
	assert.Nil(t, third["country"])

	// The shared page also yields the insured signature row.
	fields := e.extractSupplementC(page)
	assert.Equal(t, "07/09/2023", fields["insured_signature_date_mm_dd_yy"])
	assert.Equal(t, "Maria Santos", fields["printed_name_of_insured"])
}

func TestExtractSupplementDJoined(t *testing.T) {
	e := newTestExtractor(t)
	fields := e.extractSupplementD(`Insured's Name: Maria Santos
Policy/Certificate Number: 245549351
Personal Representative: FatherJoao Santos`)

	assert.Equal(t, "Maria Santos", fields["insured_name"])
	assert.Equal(t, "245549351", fields["policy_certificate_number"])
	assert.Equal(t, "Father", fields["personal_representative_relationship"])
	assert.Equal(t, "Joao Santos", fields["personal_representative_name"])
}

func TestExtractSupplementDLabeled(t *testing.T) {
	e := newTestExtractor(t)
	fields := e.extractSupplementD(`Insured Name: Maria Santos
Personal Representative Name: Ana Santos
Relationship of Personal Representative to Insured: Mother`)

	assert.Equal(t, "Maria Santos", fields["insured_name"])
	assert.Equal(t, "Mother", fields["personal_representative_relationship"])
	assert.Equal(t, "Ana Santos", fields["personal_representative_name"])
}

func TestExtractDispatch(t *testing.T) {
	e := newTestExtractor(t)
	page := document.PageText{Page: 1, RawText: partALabeledPage}

	got := e.Extract(section.PartA, page)
	assert.NotNil(t, got.FormFields)
	assert.Nil(t, got.Signatures)
	assert.Nil(t, got.PartB)
	assert.Nil(t, got.Tables)
	assert.Nil(t, got.ThirdParty)

	got = e.Extract(section.Unknown, page)
	assert.Equal(t, PageFields{}, got)
}
