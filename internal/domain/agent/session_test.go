package agent

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/ros/backend/internal/domain/shell"
	"github.com/GriffinCanCode/ros/backend/internal/domain/vfs"
)

type mockChat struct {
	mock.Mock
}

func (m *mockChat) SendMessage(ctx context.Context, text string) (*Reply, error) {
	args := m.Called(ctx, text)
	reply, _ := args.Get(0).(*Reply)
	return reply, args.Error(1)
}

func (m *mockChat) SendFunctionResponses(ctx context.Context, responses []FunctionResponse) (*Reply, error) {
	args := m.Called(ctx, responses)
	reply, _ := args.Get(0).(*Reply)
	return reply, args.Error(1)
}

type mockCommander struct {
	mock.Mock
}

func (m *mockCommander) Execute(name string, args map[string]any) (shell.Outcome, error) {
	called := m.Called(name, args)
	return called.Get(0).(shell.Outcome), called.Error(1)
}

func newFS(t *testing.T) *vfs.FileSystem {
	t.Helper()
	fs, err := vfs.New(context.Background())
	require.NoError(t, err)
	return fs
}

func TestAskPlainReply(t *testing.T) {
	chat := new(mockChat)
	chat.On("SendMessage", mock.Anything, "hello").Return(&Reply{Text: "Greetings, operator."}, nil)

	s := NewSession(chat, newFS(t), new(mockCommander))
	text, err := s.Ask(context.Background(), "hello")

	require.NoError(t, err)
	assert.Equal(t, "Greetings, operator.", text)
	chat.AssertNotCalled(t, "SendFunctionResponses", mock.Anything, mock.Anything)
}

func TestAskRunsToolsAndRespondsOnce(t *testing.T) {
	fs := newFS(t)
	chat := new(mockChat)
	commands := new(mockCommander)

	calls := []FunctionCall{
		{ID: "c1", Name: "writeFile", Args: map[string]any{"path": "/home/user/projects/app.py", "content": "print(1)"},
			Raw: json.RawMessage(`{ "path": "/home/user/projects/app.py", "content": "print(1)" }`)},
		{ID: "c2", Name: "openApp", Args: map[string]any{"appId": "code", "filePath": "/home/user/projects/app.py"}},
		{ID: "c3", Name: "readFile", Args: map[string]any{"path": "/nope"}},
	}
	chat.On("SendMessage", mock.Anything, "make a script").
		Return(&Reply{Text: "Creating it.", FunctionCalls: calls}, nil)
	commands.On("Execute", "openApp", calls[1].Args).Return(shell.Outcome{Applied: true}, nil)

	var sent []FunctionResponse
	chat.On("SendFunctionResponses", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { sent = args.Get(1).([]FunctionResponse) }).
		Return(&Reply{Text: "Done. Open Code Studio to run it."}, nil)

	s := NewSession(chat, fs, commands)
	text, err := s.Ask(context.Background(), "make a script")
	require.NoError(t, err)

	assert.Equal(t, "Creating it."+
		"\n> FS: writeFile {\"path\":\"/home/user/projects/app.py\",\"content\":\"print(1)\"}"+
		"\n> System: Executing openApp..."+
		"\n> FS: readFile {\"path\":\"/nope\"}"+
		"\nDone. Open Code Studio to run it.", text)

	content, ok := fs.ReadFile("/home/user/projects/app.py")
	require.True(t, ok)
	assert.Equal(t, "print(1)", content)

	require.Len(t, sent, 3)
	assert.Equal(t, FunctionResponse{ID: "c1", Name: "writeFile", Response: map[string]any{"success": true, "message": "File written successfully"}}, sent[0])
	assert.Equal(t, map[string]any{"result": "success"}, sent[1].Response)
	assert.Equal(t, map[string]any{"content": nil}, sent[2].Response)

	chat.AssertNumberOfCalls(t, "SendFunctionResponses", 1)
	commands.AssertExpectations(t)
}

func TestAskEmptyFollowUpAddsNothing(t *testing.T) {
	chat := new(mockChat)
	commands := new(mockCommander)
	chat.On("SendMessage", mock.Anything, "wallpaper").
		Return(&Reply{FunctionCalls: []FunctionCall{{Name: "changeWallpaper"}}}, nil)
	chat.On("SendFunctionResponses", mock.Anything, mock.Anything).Return(&Reply{}, nil)
	commands.On("Execute", "changeWallpaper", map[string]any(nil)).Return(shell.Outcome{Applied: true}, nil)

	text, err := NewSession(chat, newFS(t), commands).Ask(context.Background(), "wallpaper")
	require.NoError(t, err)
	assert.Equal(t, "\n> System: Executing changeWallpaper...", text)
}

func TestAskFailure(t *testing.T) {
	chat := new(mockChat)
	chat.On("SendMessage", mock.Anything, "hi").Return(nil, errors.New("dial tcp: refused"))

	s := NewSession(chat, newFS(t), new(mockCommander))
	text, err := s.Ask(context.Background(), "hi")

	assert.Error(t, err)
	assert.Equal(t, FailureText, text)
	assert.False(t, s.Busy())
}

func TestAskFollowUpFailureDiscardsTranscript(t *testing.T) {
	fs := newFS(t)
	chat := new(mockChat)
	chat.On("SendMessage", mock.Anything, "write").Return(&Reply{Text: "ok", FunctionCalls: []FunctionCall{
		{Name: "writeFile", Args: map[string]any{"path": "/note.txt", "content": "x"}},
	}}, nil)
	chat.On("SendFunctionResponses", mock.Anything, mock.Anything).Return(nil, errors.New("503"))

	text, err := NewSession(chat, fs, new(mockCommander)).Ask(context.Background(), "write")
	assert.Error(t, err)
	assert.Equal(t, FailureText, text)

	_, ok := fs.ReadFile("/note.txt")
	assert.True(t, ok, "tools already ran before the failure")
}

func TestAskRejectsConcurrentRequests(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	chat := new(mockChat)
	chat.On("SendMessage", mock.Anything, "slow").
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return(&Reply{Text: "finally"}, nil)

	s := NewSession(chat, newFS(t), new(mockCommander))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		text, err := s.Ask(context.Background(), "slow")
		assert.NoError(t, err)
		assert.Equal(t, "finally", text)
	}()

	select {
	case <-started:
	case <-time.After(time.Second):
		t.Fatal("request never started")
	}
	assert.True(t, s.Busy())

	_, err := s.Ask(context.Background(), "second")
	assert.ErrorIs(t, err, ErrBusy)

	close(release)
	wg.Wait()
	assert.False(t, s.Busy())
}

func TestDisabledClient(t *testing.T) {
	s := NewSession(DisabledClient{}.NewChat(), newFS(t), new(mockCommander))
	text, err := s.Ask(context.Background(), "anything")
	assert.ErrorIs(t, err, ErrDisabled)
	assert.Equal(t, FailureText, text)
}
