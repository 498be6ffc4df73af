package whatsapp

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	logger "go-bulk-messaging-dashboard/src/infrastructure/logger"

	uuid "github.com/gofrs/uuid"
	"github.com/tidwall/sjson"
)

type Error struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type JsonRpc2MessageResponse struct {
	Id     string          `json:"id"`
	Result json.RawMessage `json:"result"`
	Err    Error           `json:"error"`
}

type JsonRpc2Notification struct {
	Method string          `json:"method"`
	Params json.RawMessage `json:"params"`
	Err    Error           `json:"error"`
}

// JsonRpc2Client talks to the headless WhatsApp bridge process over a
// single TCP connection. Responses are correlated to requests by id;
// everything without an id is a lifecycle notification (qr, ready,
// authenticated, auth_failure, disconnected).
type JsonRpc2Client struct {
	conn                     net.Conn
	receivedResponsesById    map[string]chan JsonRpc2MessageResponse
	notificationChannels     map[string]chan JsonRpc2Notification
	lastTimeErrorMessageSent time.Time
	session                  string
	notificationsMutex       sync.Mutex
	receivedResponsesMutex   sync.Mutex
	Logger                   *logger.Logger
}

func NewJsonRpc2Client(session string, loggerInstance *logger.Logger) *JsonRpc2Client {
	return &JsonRpc2Client{
		session:               session,
		receivedResponsesById: make(map[string]chan JsonRpc2MessageResponse),
		notificationChannels:  make(map[string]chan JsonRpc2Notification),
		Logger:                loggerInstance,
	}
}

func (r *JsonRpc2Client) Dial(address string) error {
	var err error
	r.conn, err = net.Dial("tcp", address)
	if err != nil {
		return err
	}

	return nil
}

func (r *JsonRpc2Client) getRaw(command string, args interface{}) (string, error) {
	type Request struct {
		JsonRpc string      `json:"jsonrpc"`
		Method  string      `json:"method"`
		Id      string      `json:"id"`
		Params  interface{} `json:"params,omitempty"`
	}

	u, err := uuid.NewV4()
	if err != nil {
		return "", err
	}

	fullCommand := Request{JsonRpc: "2.0", Method: command, Id: u.String()}
	if args != nil {
		fullCommand.Params = args
	}

	fullCommandBytes, err := json.Marshal(fullCommand)
	if err != nil {
		return "", err
	}

	if r.session != "" {
		fullCommandBytes, err = sjson.SetBytes(fullCommandBytes, "params.session", r.session)
		if err != nil {
			return "", err
		}
	}

	r.Logger.Debug(fmt.Sprintf("json-rpc command: %s", string(fullCommandBytes)))

	responseChan := make(chan JsonRpc2MessageResponse, 1)
	r.receivedResponsesMutex.Lock()
	r.receivedResponsesById[u.String()] = responseChan
	r.receivedResponsesMutex.Unlock()

	defer func() {
		r.receivedResponsesMutex.Lock()
		delete(r.receivedResponsesById, u.String())
		r.receivedResponsesMutex.Unlock()
	}()

	_, err = r.conn.Write([]byte(string(fullCommandBytes) + "\n"))
	if err != nil {
		return "", err
	}

	resp := <-responseChan

	r.Logger.Debug(fmt.Sprintf("json-rpc command response: %s", string(resp.Result)))

	if resp.Err.Code != 0 {
		r.Logger.Debug(fmt.Sprintf("json-rpc command error code: %d", resp.Err.Code))
		return "", errors.New(resp.Err.Message)
	}

	return string(resp.Result), nil
}

// ReceiveData reads bridge output line by line, dispatching responses
// to their waiting callers and notifications to every subscriber.
// It runs until the connection is closed.
func (r *JsonRpc2Client) ReceiveData() {
	connbuf := bufio.NewReader(r.conn)
	for {
		str, err := connbuf.ReadString('\n')
		if err != nil {
			elapsed := time.Since(r.lastTimeErrorMessageSent)
			if elapsed > time.Duration(5*time.Minute) { // avoid spamming the log file
				r.Logger.Error(fmt.Sprintf("Couldn't read data from WhatsApp bridge: %s. Is the bridge running?", err.Error()))
				r.lastTimeErrorMessageSent = time.Now()
			}
			return
		}
		r.Logger.Debug(fmt.Sprintf("json-rpc received data: %s", str))

		var notification JsonRpc2Notification
		json.Unmarshal([]byte(str), &notification)
		if notification.Method != "" {
			r.notificationsMutex.Lock()
			for _, c := range r.notificationChannels {
				select {
				case c <- notification:
				default:
					r.Logger.Debug("Couldn't forward bridge notification, no receiver")
				}
			}
			r.notificationsMutex.Unlock()
			continue
		}

		var resp JsonRpc2MessageResponse
		err = json.Unmarshal([]byte(str), &resp)
		if err == nil {
			if resp.Id != "" {
				r.receivedResponsesMutex.Lock()
				responseChan, ok := r.receivedResponsesById[resp.Id]
				r.receivedResponsesMutex.Unlock()
				if ok {
					responseChan <- resp
				}
			}
		} else {
			r.Logger.Error(fmt.Sprintf("Received unparsable message: %s", str))
		}
	}
}

func (r *JsonRpc2Client) GetNotificationChannel() (chan JsonRpc2Notification, string, error) {
	c := make(chan JsonRpc2Notification, 16)

	channelUuid, err := uuid.NewV4()
	if err != nil {
		return c, "", err
	}

	r.notificationsMutex.Lock()
	r.notificationChannels[channelUuid.String()] = c
	r.notificationsMutex.Unlock()

	return c, channelUuid.String(), nil
}

func (r *JsonRpc2Client) RemoveNotificationChannel(channelUuid string) {
	r.notificationsMutex.Lock()
	delete(r.notificationChannels, channelUuid)
	r.notificationsMutex.Unlock()
}

func (r *JsonRpc2Client) Close() error {
	if r.conn == nil {
		return nil
	}
	return r.conn.Close()
}
