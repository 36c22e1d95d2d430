package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/tuyensinh/admission-advisor/model"
	"github.com/tuyensinh/admission-advisor/services/gemini"
	"google.golang.org/genai"
)

type stubRetriever struct {
	block   string
	queries []string
}

func (r *stubRetriever) GetAdmissionContext(_ context.Context, query string) string {
	r.queries = append(r.queries, query)
	return r.block
}

type stubCompleter struct {
	text    string
	err     error
	prompts []string
}

func (c *stubCompleter) Generate(_ context.Context, prompt string) (string, error) {
	c.prompts = append(c.prompts, prompt)
	return c.text, c.err
}

func TestBuildPromptLayout(t *testing.T) {
	history := []model.ChatMessage{
		{Sender: model.SenderUser, Message: "Học phí FPT?"},
		{Sender: model.SenderAssistant, Message: "Dựa trên dữ liệu..."},
	}

	prompt := BuildPrompt("THÔNG TIN HỌC PHÍ:\n", history, "Còn HUST thì sao?")

	assert.True(t, strings.HasPrefix(prompt, "Bạn là một trợ lý AI chuyên về tuyển sinh đại học tại Việt Nam."))
	assert.Contains(t, prompt, "\n\nDữ liệu ngữ cảnh:\nTHÔNG TIN HỌC PHÍ:\n\n\nLịch sử cuộc trò chuyện:\n")
	assert.Contains(t, prompt, "User: Học phí FPT?\nAssistant: Dựa trên dữ liệu...\n")
	assert.True(t, strings.HasSuffix(prompt, "\n\nNgười dùng: Còn HUST thì sao?\nTrợ lý AI:"))
}

func TestBuildPromptKeepsLastTenMessages(t *testing.T) {
	var history []model.ChatMessage
	for i := 1; i <= 14; i++ {
		history = append(history, model.ChatMessage{Sender: model.SenderUser, Message: fmt.Sprintf("tin nhắn %02d", i)})
	}

	prompt := BuildPrompt("", history, "mới")

	assert.NotContains(t, prompt, "tin nhắn 04")
	assert.Contains(t, prompt, "tin nhắn 05")
	assert.Contains(t, prompt, "tin nhắn 14")
}

func TestAdvisorReplyPassesContextToCompleter(t *testing.T) {
	retriever := &stubRetriever{block: "THÔNG TIN TRƯỜNG ĐẠI HỌC:\n- Trường Đại học FPT (FPT)\n"}
	completer := &stubCompleter{text: "Dựa trên dữ liệu tuyển sinh, FPT..."}
	advisor := NewAdvisorService(retriever, completer, zerolog.Nop())

	reply := advisor.Reply(context.Background(), "FPT", nil)

	assert.Equal(t, "Dựa trên dữ liệu tuyển sinh, FPT...", reply)
	assert.Equal(t, []string{"FPT"}, retriever.queries)
	if assert.Len(t, completer.prompts, 1) {
		assert.Contains(t, completer.prompts[0], "- Trường Đại học FPT (FPT)")
	}
}

func TestAdvisorReplyFallbacks(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "not configured", err: gemini.ErrNotConfigured, want: FallbackNotConfigured},
		{name: "api error", err: fmt.Errorf("gemini generate: %w", genai.APIError{Code: 500, Status: "INTERNAL"}), want: FallbackUpstream},
		{name: "no candidates", err: gemini.ErrNoCandidates, want: FallbackUpstream},
		{name: "empty text", err: gemini.ErrEmptyResponse, want: FallbackEmpty},
		{name: "transport", err: errors.New("dial tcp: connection refused"), want: "Xin lỗi, tôi gặp lỗi: dial tcp: connection refused. Vui lòng thử lại sau."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			advisor := NewAdvisorService(&stubRetriever{}, &stubCompleter{err: tt.err}, zerolog.Nop())
			assert.Equal(t, tt.want, advisor.Reply(context.Background(), "xin chào", nil))
		})
	}
}
