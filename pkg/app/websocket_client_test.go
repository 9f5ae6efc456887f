package app

import (
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/lxzan/gws"
)

func newTestServer() *WebsocketServer {
	return NewWebsocketServer(WebsocketServerConfig{})
}

func newTestClient(uid int64) *WebsocketClient {
	return &WebsocketClient{
		conn: new(gws.Conn),
		done: make(chan struct{}),
		User: &UserEntity{UID: uid},
	}
}

func TestWebsocketServer_ClientRegistry(t *testing.T) {
	w := newTestServer()

	c1 := newTestClient(1)
	c2 := newTestClient(2)

	w.AddClient(c1)
	w.AddClient(c2)

	if got := w.GetClient(c1.conn); got != c1 {
		t.Errorf("GetClient returned %p, want %p", got, c1)
	}

	w.RemoveClient(c1.conn)
	if got := w.GetClient(c1.conn); got != nil {
		t.Errorf("Expected nil after RemoveClient, got %p", got)
	}
	if got := w.GetClient(c2.conn); got != c2 {
		t.Error("RemoveClient must not drop other clients")
	}
}

func TestWebsocketServer_UserClientTracking(t *testing.T) {
	w := newTestServer()

	// 同一用户开两条连接
	c1 := newTestClient(42)
	c2 := newTestClient(42)

	w.AddUserClient(c1)
	w.AddUserClient(c2)
	if got := w.UserClientCount(42); got != 2 {
		t.Errorf("Expected 2 connections, got %d", got)
	}

	w.RemoveUserClient(c1)
	if got := w.UserClientCount(42); got != 1 {
		t.Errorf("Expected 1 connection, got %d", got)
	}

	// 最后一条连接移除后用户条目要被清掉
	w.RemoveUserClient(c2)
	if got := w.UserClientCount(42); got != 0 {
		t.Errorf("Expected 0 connections, got %d", got)
	}
	if len(w.userClients) != 0 {
		t.Errorf("Expected empty user map, got %d entries", len(w.userClients))
	}
}

// 验证注册表的增删在并发下保持一致

func TestProperty_ConcurrentClientRegistry(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)

	properties.Property("concurrent add then remove leaves registry empty", prop.ForAll(
		func(clientCount int) bool {
			if clientCount <= 0 {
				return true
			}

			w := newTestServer()
			clients := make([]*WebsocketClient, clientCount)
			for i := range clients {
				clients[i] = newTestClient(int64(i % 4)) // 少量 uid 制造共享条目
			}

			var wg sync.WaitGroup
			for _, c := range clients {
				wg.Add(1)
				go func(c *WebsocketClient) {
					defer wg.Done()
					w.AddClient(c)
					w.AddUserClient(c)
				}(c)
			}
			wg.Wait()

			// 全部注册完成
			if len(w.clients) != clientCount {
				return false
			}

			for _, c := range clients {
				wg.Add(1)
				go func(c *WebsocketClient) {
					defer wg.Done()
					w.RemoveClient(c.conn)
					w.RemoveUserClient(c)
				}(c)
			}
			wg.Wait()

			return len(w.clients) == 0 && len(w.userClients) == 0
		},
		gen.IntRange(1, 64),
	))

	properties.TestingRun(t)
}

// 验证 done 通道的关闭是幂等的

func TestProperty_MarkDoneIdempotent(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)

	properties.Property("concurrent markDone closes done exactly once", prop.ForAll(
		func(callers int) bool {
			if callers <= 0 {
				return true
			}

			c := newTestClient(1)

			var wg sync.WaitGroup
			for i := 0; i < callers; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					c.markDone() // 重复关闭会 panic, 触发即失败
				}()
			}
			wg.Wait()

			select {
			case <-c.Done():
				return true
			default:
				return false
			}
		},
		gen.IntRange(1, 32),
	))

	properties.TestingRun(t)
}

func TestWebsocketClient_BindAndValid(t *testing.T) {
	c := &WebsocketClient{Ctx: &gin.Context{}}

	type invokeParams struct {
		Tool string `json:"tool" binding:"required"`
	}

	// 非法 JSON
	var p1 invokeParams
	ok, errs := c.BindAndValid([]byte("{not json"), &p1)
	if ok || len(errs) == 0 {
		t.Error("Expected failure for malformed JSON")
	}

	// 缺少必填字段
	var p2 invokeParams
	ok, errs = c.BindAndValid([]byte(`{}`), &p2)
	if ok || len(errs) == 0 {
		t.Error("Expected failure for missing required field")
	}

	// 合法载荷
	var p3 invokeParams
	ok, _ = c.BindAndValid([]byte(`{"tool":"base64"}`), &p3)
	if !ok {
		t.Error("Expected success for valid payload")
	}
	if p3.Tool != "base64" {
		t.Errorf("Expected tool %q, got %q", "base64", p3.Tool)
	}
}
