package postal

import (
	"encoding/xml"

	"operation-history/node"
)

// OperationHistoryData is the response of both service operations: the tracked item's
// operations in the order the service reports them.
type OperationHistoryData struct {
	HistoryRecord []OperationHistoryRecord `xml:"historyRecord" yaml:"historyRecord"`
}

func (OperationHistoryData) HydrationAliases() node.Aliases {
	return node.Aliases{"historyRecord": node.Alias[OperationHistoryRecord]()}
}

// OperationHistoryRecord is one operation performed on an item.
type OperationHistoryRecord struct {
	AddressParameters   AddressParameters   `xml:"AddressParameters" yaml:"AddressParameters"`
	FinanceParameters   FinanceParameters   `xml:"FinanceParameters" yaml:"FinanceParameters"`
	ItemParameters      ItemParameters      `xml:"ItemParameters" yaml:"ItemParameters"`
	OperationParameters OperationParameters `xml:"OperationParameters" yaml:"OperationParameters"`
	UserParameters      UserParameters      `xml:"UserParameters" yaml:"UserParameters"`
}

// AddressParameters holds where the item is heading and where the operation took place.
type AddressParameters struct {
	DestinationAddress Address `xml:"DestinationAddress" yaml:"DestinationAddress"`
	OperationAddress   Address `xml:"OperationAddress" yaml:"OperationAddress"`
	// MailDirect is the destination country.
	MailDirect  Country `xml:"MailDirect" yaml:"MailDirect"`
	CountryFrom Country `xml:"CountryFrom" yaml:"CountryFrom"`
	CountryOper Country `xml:"CountryOper" yaml:"CountryOper"`
}

// FinanceParameters amounts are in kopecks.
type FinanceParameters struct {
	// Payment is the cash-on-delivery amount.
	Payment int `xml:"Payment" yaml:"Payment"`
	// Value is the declared value.
	Value    int `xml:"Value" yaml:"Value"`
	MassRate int `xml:"MassRate" yaml:"MassRate"`
	InsrRate int `xml:"InsrRate" yaml:"InsrRate"`
	// AirRate is the air transport share of MassRate.
	AirRate int `xml:"AirRate" yaml:"AirRate"`
	Rate    int `xml:"Rate" yaml:"Rate"`
}

type ItemParameters struct {
	Barcode  string `xml:"Barcode" yaml:"Barcode"`
	Internum string `xml:"Internum" yaml:"Internum"`
	// ValidRuType and ValidEnType tell whether the item kind and category are valid
	// for domestic and international mail.
	ValidRuType     bool       `xml:"ValidRuType" yaml:"ValidRuType"`
	ValidEnType     bool       `xml:"ValidEnType" yaml:"ValidEnType"`
	ComplexItemName string     `xml:"ComplexItemName" yaml:"ComplexItemName"`
	MailRank        CodedLabel `xml:"MailRank" yaml:"MailRank"`
	PostMark        CodedLabel `xml:"PostMark" yaml:"PostMark"`
	MailType        CodedLabel `xml:"MailType" yaml:"MailType"`
	MailCtg         CodedLabel `xml:"MailCtg" yaml:"MailCtg"`
	// Mass, MaxMassRU and MaxMassEN are in grams.
	Mass      int `xml:"Mass" yaml:"Mass"`
	MaxMassRU int `xml:"MaxMassRU" yaml:"MaxMassRU"`
	MaxMassEN int `xml:"MaxMassEN" yaml:"MaxMassEN"`
}

type OperationParameters struct {
	OperType CodedLabel `xml:"OperType" yaml:"OperType"`
	OperAttr CodedLabel `xml:"OperAttr" yaml:"OperAttr"`
	// OperDate is kept as sent; see OperTime.
	OperDate string `xml:"OperDate" yaml:"OperDate"`
}

type UserParameters struct {
	SendCtg CodedLabel `xml:"SendCtg" yaml:"SendCtg"`
	Sndr    string     `xml:"Sndr" yaml:"Sndr"`
	Rcpn    string     `xml:"Rcpn" yaml:"Rcpn"`
}

type Country struct {
	Id     int    `xml:"Id" yaml:"Id"`
	Code2A string `xml:"Code2A" yaml:"Code2A"`
	Code3A string `xml:"Code3A" yaml:"Code3A"`
	NameRU string `xml:"NameRU" yaml:"NameRU"`
	NameEN string `xml:"NameEN" yaml:"NameEN"`
}

// CodedLabel is a reference-book entry: a numeric code and its label.
type CodedLabel struct {
	Id   int    `xml:"Id" yaml:"Id"`
	Name string `xml:"Name" yaml:"Name"`
}

type Address struct {
	Index       string `xml:"Index" yaml:"Index"`
	Description string `xml:"Description" yaml:"Description"`
}

// OperationHistoryRequest asks for the history of one item.
type OperationHistoryRequest struct {
	XMLName xml.Name `xml:"historyRequest" yaml:"-"`
	Barcode string   `xml:"Barcode" yaml:"Barcode"`
	// MessageType identifies the consuming system.
	MessageType int `xml:"MessageType" yaml:"MessageType"`
}

func (OperationHistoryRequest) ParamName() string { return "historyRequest" }

// UpdateOperationRequest replaces a recorded operation of an item.
type UpdateOperationRequest struct {
	XMLName             xml.Name               `xml:"updateRequest" yaml:"-"`
	RequestType         string                 `xml:"RequestType" yaml:"RequestType"`
	SourceOperation     OperationHistoryRecord `xml:"SourceOperation" yaml:"SourceOperation"`
	TargetOperation     OperationHistoryRecord `xml:"TargetOperation" yaml:"TargetOperation"`
	ReasonDescription   string                 `xml:"ReasonDescription" yaml:"ReasonDescription"`
	InitiatorDepartment int                    `xml:"InitiatorDepartment" yaml:"InitiatorDepartment"`
	ExecutorIP          string                 `xml:"ExecutorIP" yaml:"ExecutorIP"`
}

func (UpdateOperationRequest) ParamName() string { return "updateRequest" }
