package postal

const (
	ServiceURI       = "http://voh.russianpost.ru:8080/niips-operationhistory-web/OperationHistory"
	ServiceNamespace = "http://russianpost.org/operationhistory"
)

// ResultPart is the return part both operations wrap their response in.
const ResultPart = "OperationHistoryData"

// Remote operation names.
const (
	OpGetOperationHistory = "GetOperationHistory"
	OpUpdateOperationData = "UpdateOperationData"
)

// OperType labels as reported by the service.
const (
	OperationDelivery   = "Вручение"
	OperationProcessing = "Обработка"
	OperationReception  = "Приём"
	OperationReturn     = "Возврат"
)

// OperAttr label of an item that reached its delivery point.
const OperationAttrDelivered = "Прибыло в место вручения"
