package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/lxzan/gws"
)

const (
	baseURL = "http://127.0.0.1:9000"
	wsURL   = "ws://127.0.0.1:9000/api/ws"
)

type Handler struct {
	gws.BuiltinEventHandler
	recv chan []byte
}

func (h *Handler) OnMessage(socket *gws.Conn, message *gws.Message) {
	defer message.Close()
	data := message.Data.Bytes()
	// Copy data because message is closed after return
	buf := make([]byte, len(data))
	copy(buf, data)
	h.recv <- buf
}

func main() {
	// 1. Register & Login
	token := loginOrRegister()
	fmt.Println("Got token:", token)

	// 2. Connect WS
	handler := &Handler{recv: make(chan []byte, 10)}
	u, _ := url.Parse(wsURL)
	socket, _, err := gws.NewClient(handler, &gws.ClientOption{
		Addr: u.String(),
	})
	if err != nil {
		log.Fatal("dial:", err)
	}
	go socket.ReadLoop()
	defer socket.WriteClose(1000, []byte("bye"))

	// 3. Auth
	sendAction(socket, "Authorization", []byte(token))
	readResponse(handler) // Expect Authorization success

	// 4. Ping
	sendAction(socket, "Ping", nil)
	readResponse(handler)

	// 5. Invoke a tool over WS
	invoke := map[string]interface{}{
		"tool":   "base64",
		"action": "encode-text",
		"params": map[string]interface{}{"text": "hello toolbox"},
	}
	invokeBytes, _ := json.Marshal(invoke)
	sendAction(socket, "ToolInvoke", invokeBytes)
	readResponse(handler)

	// 6. Submit a vanity job over REST, then follow progress over WS
	jobID := submitVanityJob(token)
	fmt.Println("Vanity job:", jobID)

	sendAction(socket, "VanitySub", []byte(jobID))
	readResponse(handler) // Initial job snapshot

	// Progress frames arrive until the job finishes
	// 进度帧会一直推送到任务结束
	deadline := time.After(60 * time.Second)
	for {
		select {
		case msg := <-handler.recv:
			text := string(msg)
			fmt.Println("Recv:", text)
			if strings.Contains(text, `"status":"done"`) ||
				strings.Contains(text, `"status":"not_found"`) ||
				strings.Contains(text, `"status":"canceled"`) ||
				strings.Contains(text, `"status":"failed"`) {
				fmt.Println("Job finished")
				return
			}
		case <-deadline:
			log.Fatal("timeout waiting for job to finish")
		}
	}
}

func loginOrRegister() string {
	client := &http.Client{Timeout: 5 * time.Second}

	// Generate random username
	randName := fmt.Sprintf("user%d", time.Now().UnixNano())
	regBody := []byte(fmt.Sprintf(`{"username":"%s","password":"password123","confirmPassword":"password123","email":"%s@example.com"}`, randName, randName))
	resp, err := client.Post(baseURL+"/api/user/register", "application/json", bytes.NewBuffer(regBody))
	if err != nil {
		log.Fatal("register req:", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	fmt.Println("Register response:", string(body))

	var res struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	json.Unmarshal(body, &res)
	if res.Data.Token != "" {
		return res.Data.Token
	}

	// Login (fallback)
	loginBody := []byte(fmt.Sprintf(`{"credentials":"%s","password":"password123"}`, randName))
	resp, err = client.Post(baseURL+"/api/user/login", "application/json", bytes.NewBuffer(loginBody))
	if err != nil {
		log.Fatal("login req:", err)
	}
	defer resp.Body.Close()

	body, _ = io.ReadAll(resp.Body)
	var loginRes struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	json.Unmarshal(body, &loginRes)
	if loginRes.Data.Token == "" {
		log.Fatal("login failed response: ", string(body))
	}
	return loginRes.Data.Token
}

func submitVanityJob(token string) string {
	client := &http.Client{Timeout: 5 * time.Second}

	// A single case-insensitive suffix letter keeps the search short
	// 单个忽略大小写的后缀字母, 保证很快能搜到
	jobBody := []byte(`{"pattern":"a","placement":"suffix","caseSensitive":false,"workers":2}`)
	req, _ := http.NewRequest(http.MethodPost, baseURL+"/api/solana/vanity", bytes.NewBuffer(jobBody))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", token)

	resp, err := client.Do(req)
	if err != nil {
		log.Fatal("vanity req:", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	var res struct {
		Data struct {
			JobID string `json:"jobId"`
		} `json:"data"`
	}
	json.Unmarshal(body, &res)
	if res.Data.JobID == "" {
		log.Fatal("vanity submit failed response: ", string(body))
	}
	return res.Data.JobID
}

func sendAction(socket *gws.Conn, typeStr string, data []byte) {
	payload := fmt.Sprintf("%s|%s", typeStr, string(data))
	socket.WriteMessage(gws.OpcodeText, []byte(payload))
}

func readResponse(h *Handler) string {
	select {
	case msg := <-h.recv:
		fmt.Println("Recv:", string(msg))
		return string(msg)
	case <-time.After(5 * time.Second):
		log.Fatal("timeout waiting for response")
		return ""
	}
}
