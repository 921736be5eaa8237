package logging

type Category string
type SubCategory string
type ExtraKey string

const (
	General         Category = "General"
	Registry        Category = "Registry"
	RabbitMQ        Category = "RabbitMQ"
	Mongo           Category = "Mongo"
	Validation      Category = "Validation"
	RequestResponse Category = "RequestResponse"
)

const (
	// General
	Startup         SubCategory = "Startup"
	Shutdown        SubCategory = "Shutdown"
	ExternalService SubCategory = "ExternalService"

	// Registry
	RoomLifecycle SubCategory = "RoomLifecycle"
	ExpirySweep   SubCategory = "ExpirySweep"
)

const (
	AppName      ExtraKey = "AppName"
	LoggerName   ExtraKey = "Logger"
	ClientIp     ExtraKey = "ClientIp"
	Method       ExtraKey = "Method"
	StatusCode   ExtraKey = "StatusCode"
	BodySize     ExtraKey = "BodySize"
	Path         ExtraKey = "Path"
	Latency      ExtraKey = "Latency"
	RoomCode     ExtraKey = "RoomCode"
	ErrorMessage ExtraKey = "ErrorMessage"
)
