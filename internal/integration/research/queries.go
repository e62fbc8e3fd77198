package research

import (
	"fmt"

	"github.com/futig/legaldoc-assistant/internal/entity"
)

type aspect string

const (
	aspectLegalRequirements aspect = "legal_requirements"
	aspectTemplateStructure aspect = "template_structure"
	aspectKeyClauses        aspect = "key_clauses"
	aspectCompliance        aspect = "compliance"
)

// aspects is the order queries are run in
var aspects = []aspect{
	aspectLegalRequirements,
	aspectTemplateStructure,
	aspectKeyClauses,
	aspectCompliance,
}

// queryFormats holds the search phrasing per document type, %s is the country
var queryFormats = map[entity.DocumentTypeID]map[aspect]string{
	entity.DocumentNDA: {
		aspectLegalRequirements: "%s NDA legal requirements confidentiality agreement law",
		aspectTemplateStructure: "%s NDA template structure format example",
		aspectKeyClauses:        "%s NDA mandatory clauses legal requirements",
		aspectCompliance:        "%s NDA compliance legal standards regulations",
	},
	entity.DocumentEmploymentContract: {
		aspectLegalRequirements: "%s employment contract law legal requirements",
		aspectTemplateStructure: "%s employment contract template format",
		aspectKeyClauses:        "%s employment contract mandatory terms clauses",
		aspectCompliance:        "%s employment law compliance requirements",
	},
	entity.DocumentResidentialLease: {
		aspectLegalRequirements: "%s residential lease law legal requirements",
		aspectTemplateStructure: "%s residential lease agreement template",
		aspectKeyClauses:        "%s residential lease mandatory clauses terms",
		aspectCompliance:        "%s rental law compliance requirements",
	},
	entity.DocumentB2BContract: {
		aspectLegalRequirements: "%s business contract law legal requirements",
		aspectTemplateStructure: "%s business contract template format",
		aspectKeyClauses:        "%s business contract mandatory clauses",
		aspectCompliance:        "%s business law compliance requirements",
	},
	entity.DocumentPowerOfAttorney: {
		aspectLegalRequirements: "%s power of attorney legal requirements",
		aspectTemplateStructure: "%s power of attorney template format",
		aspectKeyClauses:        "%s power of attorney mandatory clauses",
		aspectCompliance:        "%s power of attorney compliance law",
	},
	entity.DocumentMeetingMinutes: {
		aspectLegalRequirements: "%s meeting minutes legal requirements corporate law",
		aspectTemplateStructure: "%s meeting minutes template format",
		aspectKeyClauses:        "%s meeting minutes mandatory elements",
		aspectCompliance:        "%s corporate meeting compliance requirements",
	},
}

func buildQueries(docType entity.DocumentTypeID, country string) map[aspect]string {
	out := make(map[aspect]string, len(aspects))

	formats, ok := queryFormats[docType]
	if !ok {
		out[aspectLegalRequirements] = fmt.Sprintf("%s %s legal requirements", country, docType)
		out[aspectTemplateStructure] = fmt.Sprintf("%s %s template format", country, docType)
		out[aspectKeyClauses] = fmt.Sprintf("%s %s mandatory clauses", country, docType)
		out[aspectCompliance] = fmt.Sprintf("%s %s compliance requirements", country, docType)
		return out
	}

	for a, f := range formats {
		out[a] = fmt.Sprintf(f, country)
	}
	return out
}
