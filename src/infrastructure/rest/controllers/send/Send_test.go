package send

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-bulk-messaging-dashboard/src/domain/campaign"
	logger "go-bulk-messaging-dashboard/src/infrastructure/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type mockOrchestrator struct {
	startFn func(job *campaign.SendJob) (string, error)
	running bool
}

func (m *mockOrchestrator) Start(job *campaign.SendJob) (string, error) {
	if m.startFn != nil {
		return m.startFn(job)
	}
	return "run-1", nil
}

func (m *mockOrchestrator) IsRunning() bool {
	return m.running
}

type mockMediaSaver struct {
	saveFn func(fileHeader *multipart.FileHeader) (*campaign.Media, error)
}

func (m *mockMediaSaver) SaveMedia(fileHeader *multipart.FileHeader) (*campaign.Media, error) {
	if m.saveFn != nil {
		return m.saveFn(fileHeader)
	}
	return &campaign.Media{Path: "/tmp/" + fileHeader.Filename}, nil
}

func setupLogger(t *testing.T) *logger.Logger {
	loggerInstance, err := logger.NewDevelopmentLogger()
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	return loggerInstance
}

type formField struct {
	name  string
	value string
}

func multipartRequest(t *testing.T, fields []formField, fileField string, fileName string, fileContent []byte) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for _, field := range fields {
		assert.NoError(t, writer.WriteField(field.name, field.value))
	}
	if fileField != "" {
		part, err := writer.CreateFormFile(fileField, fileName)
		assert.NoError(t, err)
		_, err = part.Write(fileContent)
		assert.NoError(t, err)
	}
	assert.NoError(t, writer.Close())

	req, _ := http.NewRequest("POST", "/send-messages", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func contactsField(t *testing.T) formField {
	payload, err := json.Marshal([]campaign.Contact{
		{Name: "Asha", Number: "9876543210"},
		{Name: "Ravi", Number: "9876543211"},
	})
	assert.NoError(t, err)
	return formField{name: "contacts", value: string(payload)}
}

func TestSendMessagesAccepted(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var gotJob *campaign.SendJob
	orchestrator := &mockOrchestrator{
		startFn: func(job *campaign.SendJob) (string, error) {
			gotJob = job
			return "run-42", nil
		},
	}
	controller := NewSendController(orchestrator, &mockMediaSaver{}, setupLogger(t))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = multipartRequest(t, []formField{
		contactsField(t),
		{name: "message", value: "Hello {{name}}"},
		{name: "delay", value: "1500"},
	}, "", "", nil)

	controller.SendMessages(c)

	assert.Equal(t, http.StatusAccepted, w.Code)

	var response SendResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "run-42", response.RunID)
	assert.Equal(t, "Messages are being sent", response.Message)

	assert.Len(t, gotJob.Contacts, 2)
	assert.Equal(t, "Hello {{name}}", gotJob.MessageTemplate)
	assert.Equal(t, 1500*time.Millisecond, gotJob.Delay)
	assert.Nil(t, gotJob.Media)
}

func TestSendMessagesWithMedia(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var gotJob *campaign.SendJob
	orchestrator := &mockOrchestrator{
		startFn: func(job *campaign.SendJob) (string, error) {
			gotJob = job
			return "run-1", nil
		},
	}
	media := &mockMediaSaver{
		saveFn: func(fileHeader *multipart.FileHeader) (*campaign.Media, error) {
			return &campaign.Media{Path: "/tmp/stored.jpg", MimeType: "image/jpeg", FileName: fileHeader.Filename}, nil
		},
	}
	controller := NewSendController(orchestrator, media, setupLogger(t))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = multipartRequest(t, []formField{
		contactsField(t),
		{name: "message", value: "see attached"},
	}, "mediaFile", "photo.jpg", []byte("jpeg-bytes"))

	controller.SendMessages(c)

	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.NotNil(t, gotJob.Media)
	assert.Equal(t, "/tmp/stored.jpg", gotJob.Media.Path)
	assert.Equal(t, "photo.jpg", gotJob.Media.FileName)
}

func TestSendMessagesMissingContacts(t *testing.T) {
	gin.SetMode(gin.TestMode)

	controller := NewSendController(&mockOrchestrator{}, &mockMediaSaver{}, setupLogger(t))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = multipartRequest(t, []formField{
		{name: "message", value: "hi"},
	}, "", "", nil)

	controller.SendMessages(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSendMessagesInvalidContactsPayload(t *testing.T) {
	gin.SetMode(gin.TestMode)

	controller := NewSendController(&mockOrchestrator{}, &mockMediaSaver{}, setupLogger(t))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = multipartRequest(t, []formField{
		{name: "contacts", value: "not json"},
		{name: "message", value: "hi"},
	}, "", "", nil)

	controller.SendMessages(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSendMessagesInvalidDelay(t *testing.T) {
	gin.SetMode(gin.TestMode)

	controller := NewSendController(&mockOrchestrator{}, &mockMediaSaver{}, setupLogger(t))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = multipartRequest(t, []formField{
		contactsField(t),
		{name: "message", value: "hi"},
		{name: "delay", value: "-5"},
	}, "", "", nil)

	controller.SendMessages(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSendMessagesJobInProgress(t *testing.T) {
	gin.SetMode(gin.TestMode)

	orchestrator := &mockOrchestrator{
		startFn: func(*campaign.SendJob) (string, error) {
			return "", campaign.ErrJobInProgress
		},
	}
	controller := NewSendController(orchestrator, &mockMediaSaver{}, setupLogger(t))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = multipartRequest(t, []formField{
		contactsField(t),
		{name: "message", value: "hi"},
	}, "", "", nil)

	controller.SendMessages(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestSendMessagesChannelNotReady(t *testing.T) {
	gin.SetMode(gin.TestMode)

	orchestrator := &mockOrchestrator{
		startFn: func(*campaign.SendJob) (string, error) {
			return "", campaign.ErrChannelNotReady
		},
	}
	controller := NewSendController(orchestrator, &mockMediaSaver{}, setupLogger(t))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = multipartRequest(t, []formField{
		contactsField(t),
		{name: "message", value: "hi"},
	}, "", "", nil)

	controller.SendMessages(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
