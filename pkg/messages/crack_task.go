package messages

import "encoding/xml"

type CrackTaskRequest struct {
	XMLName       xml.Name `xml:"CrackTaskRequest"`
	RequestId     string   `xml:"RequestId"`
	Strategy      string   `xml:"Strategy"`
	Targets       []string `xml:"Targets>Hash"`
	MinLength     int      `xml:"MinLength"`
	MaxLength     int      `xml:"MaxLength"`
	Prefix        string   `xml:"Prefix"`
	Capacity      int      `xml:"Capacity"`
	LegacyCharset bool     `xml:"LegacyCharset"`
}

type FoundMatch struct {
	Hash string `xml:"Hash" json:"hash"`
	Name string `xml:"Name" json:"name"`
}

type CrackTaskResponse struct {
	XMLName   xml.Name     `xml:"CrackTaskResponse"`
	RequestId string       `xml:"RequestId"`
	Found     []FoundMatch `xml:"Found>Match"`
	Truncated bool         `xml:"Truncated"`
}
