package exporter

const (
	UserName     string = "UserName"
	AccessKeyId  string = "AccessKeyId"
	Status       string = "Status"
	KeyAgeInDays string = "KeyAgeInDays"

	dateLayout string = "2006-01-02"
)

var ReportHeader = []string{UserName, AccessKeyId, Status, KeyAgeInDays}
