package config

type WorkerKeyStruct struct {
	EmailSendQueue string
}

var WorkerKey = &WorkerKeyStruct{
	EmailSendQueue: "email_send_queue",
}
