// Package wiselms is a typed client for the WiseLMS REST API plus the
// name-convention matcher that links regular classrooms to their
// "Activities" companion courses.
package wiselms

// Class type filters accepted by the classes listing endpoint.
const (
	ClassTypeLive     = "LIVE"
	ClassTypeRecorded = "RECORDED"
	ClassTypeOneToOne = "ONE_TO_ONE"
)

// Course is a catalog entry in the WiseLMS institute.
type Course struct {
	ID        string `json:"_id"`
	Name      string `json:"name"`
	Published bool   `json:"published"`
	Subject   string `json:"subject,omitempty"`
	ClassType string `json:"classType,omitempty"`
}

// Student is a participant of a WiseLMS classroom.
type Student struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// Parent is a guardian contact linked to a student report.
type Parent struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// StudentWithParent pairs a student with their first linked parent contact.
type StudentWithParent struct {
	Student Student `json:"student"`
	Parent  Parent  `json:"parent"`
}

// Webhook event names delivered by WiseLMS on classroom membership changes.
const (
	EventStudentAddedToClassroom     = "StudentAddedToClassroomEvent"
	EventStudentRemovedFromClassroom = "StudentRemovedFromClassroomEvent"
)

// WebhookEvent is the envelope WiseLMS POSTs to the webhook endpoint.
type WebhookEvent struct {
	Event   string          `json:"event"`
	Payload *WebhookPayload `json:"payload"`
}

// WebhookPayload carries the classroom and student a membership event
// refers to.
type WebhookPayload struct {
	Classroom WebhookClassroom `json:"classroom"`
	Student   WebhookStudent   `json:"student"`
}

// WebhookClassroom identifies the classroom in a webhook payload.
type WebhookClassroom struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// WebhookStudent identifies the student in a webhook payload.
type WebhookStudent struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}
