package host

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/houdinimcp/command"
	"github.com/viant/houdinimcp/protocol"
	"github.com/viant/houdinimcp/scene"
)

func newTestDispatcher(t *testing.T, extra ...*command.Registration) *command.Dispatcher {
	registry := command.NewRegistry()
	require.NoError(t, scene.NewHost().Register(registry))
	require.NoError(t, registry.RegisterFunc(&command.Spec{Name: "explode"}, func(ctx context.Context, params map[string]any) (any, error) {
		return nil, errors.New("Node cook failed: /obj/box1")
	}))
	for _, registration := range extra {
		require.NoError(t, registry.Register(registration.Spec, registration.Handler))
	}
	worker := command.NewWorker(0)
	t.Cleanup(func() { _ = worker.Close() })
	return command.NewDispatcher(registry, worker)
}

type client struct {
	conn    net.Conn
	encoder *protocol.Encoder
	decoder *protocol.Decoder
}

func dial(t *testing.T, addr net.Addr) *client {
	conn, err := net.DialTimeout("tcp", addr.String(), time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return &client{conn: conn, encoder: protocol.NewEncoder(conn, 0), decoder: protocol.NewDecoder(conn, 0)}
}

func (c *client) send(t *testing.T, commandType string, params map[string]any) *protocol.Response {
	require.NoError(t, c.conn.SetDeadline(time.Now().Add(5*time.Second)))
	require.NoError(t, c.encoder.Encode(protocol.NewCommand(commandType, params)))
	response, err := c.decoder.DecodeResponse()
	require.NoError(t, err)
	require.NoError(t, response.Validate())
	return response
}

func listen(t *testing.T, dispatcher *command.Dispatcher, options ...Option) *Server {
	server, err := Listen("127.0.0.1:0", dispatcher, options...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = server.Stop() })
	return server
}

func TestServer_Session(t *testing.T) {
	server := listen(t, newTestDispatcher(t))
	c := dial(t, server.Addr())

	response := c.send(t, "create_node", map[string]any{"node_type": "geo", "name": "box1"})
	require.Equal(t, protocol.StatusOK, response.Status, response.Message)
	result, ok := response.Result.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "box1", result["id"])
	assert.Equal(t, "/obj/box1", result["path"])

	response = c.send(t, "nonexistent_command", map[string]any{})
	assert.Equal(t, &protocol.Response{Status: protocol.StatusError, Message: "Unknown command type: nonexistent_command"}, response)

	response = c.send(t, "explode", nil)
	assert.Equal(t, &protocol.Response{Status: protocol.StatusError, Message: "Node cook failed: /obj/box1"}, response)

	response = c.send(t, "get_scene_info", nil)
	require.True(t, response.IsOK())
	info := response.Result.(map[string]any)
	assert.Equal(t, json.Number("5"), info["node_count"])

	response = c.send(t, "create_node", map[string]any{"name": "box2"})
	assert.Equal(t, "Missing required parameter: node_type", response.Message)
}

func TestServer_ConcurrentSessions(t *testing.T) {
	server := listen(t, newTestDispatcher(t))
	first := dial(t, server.Addr())
	second := dial(t, server.Addr())
	assert.True(t, first.send(t, "create_node", map[string]any{"node_type": "geo", "name": "a"}).IsOK())
	assert.True(t, second.send(t, "create_node", map[string]any{"node_type": "geo", "name": "b"}).IsOK())
	response := first.send(t, "create_node", map[string]any{"node_type": "geo", "name": "b"})
	assert.Equal(t, "Failed to create node: Node already exists: /obj/b", response.Message)
	assert.Eventually(t, func() bool { return server.Sessions() == 2 }, time.Second, 5*time.Millisecond)
}

func TestServer_ProtocolErrorDropsSession(t *testing.T) {
	server := listen(t, newTestDispatcher(t))
	c := dial(t, server.Addr())
	_, err := c.conn.Write([]byte("{\"type\": nope}\n"))
	require.NoError(t, err)
	require.NoError(t, c.conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, err = c.decoder.DecodeResponse()
	assert.Error(t, err)

	other := dial(t, server.Addr())
	assert.True(t, other.send(t, "get_scene_info", nil).IsOK())
}

func TestServer_OversizedMessage(t *testing.T) {
	server := listen(t, newTestDispatcher(t), WithMaxMessageSize(64))
	c := dial(t, server.Addr())
	require.NoError(t, protocol.NewEncoder(c.conn, 1024).Encode(protocol.NewCommand("execute_code", map[string]any{"code": strings.Repeat("x", 200)})))
	require.NoError(t, c.conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, err := c.decoder.DecodeResponse()
	assert.Error(t, err)
}

func TestServer_IdleTimeout(t *testing.T) {
	server := listen(t, newTestDispatcher(t), WithIdleTimeout(50*time.Millisecond))
	c := dial(t, server.Addr())
	assert.True(t, c.send(t, "get_scene_info", nil).IsOK())
	require.NoError(t, c.conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, err := c.decoder.DecodeResponse()
	assert.Equal(t, io.EOF, err)
	assert.Eventually(t, func() bool { return server.Sessions() == 0 }, time.Second, 5*time.Millisecond)
}

func TestServer_StopWaitsForInFlight(t *testing.T) {
	started := make(chan struct{})
	dispatcher := newTestDispatcher(t, &command.Registration{
		Spec: &command.Spec{Name: "slow"},
		Handler: command.HandlerFunc(func(ctx context.Context, params map[string]any) (any, error) {
			close(started)
			time.Sleep(100 * time.Millisecond)
			return "done", nil
		}),
	})
	server := listen(t, dispatcher, WithGracePeriod(2*time.Second))
	c := dial(t, server.Addr())
	idle := dial(t, server.Addr())
	require.NoError(t, c.encoder.Encode(protocol.NewCommand("slow", nil)))
	<-started

	require.NoError(t, server.Stop())
	require.NoError(t, c.conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	response, err := c.decoder.DecodeResponse()
	require.NoError(t, err)
	assert.Equal(t, "done", response.Result)

	require.NoError(t, idle.conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, err = idle.decoder.DecodeResponse()
	assert.Error(t, err)

	_, err = net.DialTimeout("tcp", server.Addr().String(), 200*time.Millisecond)
	assert.Error(t, err)
	assert.NoError(t, server.Stop())
}

func TestServer_StopForcesAfterGrace(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	started := make(chan struct{})
	dispatcher := newTestDispatcher(t, &command.Registration{
		Spec: &command.Spec{Name: "stuck"},
		Handler: command.HandlerFunc(func(ctx context.Context, params map[string]any) (any, error) {
			close(started)
			<-release
			return nil, nil
		}),
	})
	server := listen(t, dispatcher, WithGracePeriod(50*time.Millisecond))
	c := dial(t, server.Addr())
	require.NoError(t, c.encoder.Encode(protocol.NewCommand("stuck", nil)))
	<-started

	begin := time.Now()
	require.NoError(t, server.Stop())
	assert.Less(t, time.Since(begin), 2*time.Second)
	require.NoError(t, c.conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, err := c.decoder.DecodeResponse()
	assert.Error(t, err)
}
