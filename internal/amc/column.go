package amc

// Column is one output column of an article table.
type Column int

const (
	ColDocID Column = iota
	ColDate
	ColSource
	ColStartPage
	ColEndPage
	ColRegion
	ColMediatype
	ColLength
	ColRessorts
	ColMutation
	ColKeys
	ColTitle
	ColContent
)

var allColumns = []Column{
	ColDocID, ColDate, ColSource, ColStartPage, ColEndPage, ColRegion, ColMediatype,
	ColLength, ColRessorts, ColMutation, ColKeys, ColTitle, ColContent,
}

var columnLabels = [...]string{
	ColDocID:     "doc id",
	ColDate:      "Date",
	ColSource:    "Source",
	ColStartPage: "Start Page",
	ColEndPage:   "End Page",
	ColRegion:    "Region",
	ColMediatype: "Mediatype",
	ColLength:    "Length",
	ColRessorts:  "Ressorts",
	ColMutation:  "Mutation",
	ColKeys:      "Keys",
	ColTitle:     "Title",
	ColContent:   "Content",
}

var columnFields = [...]Field{
	ColDocID:     FieldDocID,
	ColDate:      FieldDate,
	ColSource:    FieldSource,
	ColStartPage: FieldPages,
	ColEndPage:   FieldPages,
	ColRegion:    FieldRegion,
	ColMediatype: FieldMediatype,
	ColLength:    FieldLength,
	ColRessorts:  FieldRessorts,
	ColMutation:  FieldMutation,
	ColKeys:      FieldKeys,
	ColTitle:     FieldTitle,
	ColContent:   FieldContent,
}

// Label is the column header used in written tables.
func (c Column) Label() string {
	if c < 0 || int(c) >= len(columnLabels) {
		return ""
	}
	return columnLabels[c]
}

// Field is the requestable field that produces this column.
func (c Column) Field() Field {
	if c < 0 || int(c) >= len(columnFields) {
		return 0
	}
	return columnFields[c]
}

func (c Column) String() string { return c.Label() }
