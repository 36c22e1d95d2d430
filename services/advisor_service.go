package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/tuyensinh/admission-advisor/model"
	"github.com/tuyensinh/admission-advisor/services/gemini"
)

// historyWindow is the number of most recent messages included in the prompt
const historyWindow = 10

// Fallback replies returned instead of an error when the completion fails
const (
	FallbackNotConfigured = "Xin lỗi, tôi chưa thể kết nối với dịch vụ AI. Vui lòng liên hệ quản trị viên để cấu hình API key."
	FallbackUpstream      = "Xin lỗi, tôi gặp sự cố khi xử lý câu hỏi của bạn. Vui lòng thử lại sau."
	FallbackEmpty         = "Xin lỗi, tôi không thể tạo phản hồi lúc này."
	fallbackErrorFormat   = "Xin lỗi, tôi gặp lỗi: %s. Vui lòng thử lại sau."
)

const advisorSystemPrompt = `Bạn là một trợ lý AI chuyên về tuyển sinh đại học tại Việt Nam. 

QUY TẮC TUYỆT ĐỐI:
- BẮT BUỘC phải sử dụng dữ liệu được cung cấp trong phần 'Dữ liệu ngữ cảnh' để trả lời
- NGHIÊM CẤM nói 'không có thông tin', 'xin lỗi', 'tôi không thể' khi có dữ liệu trong ngữ cảnh
- LUÔN bắt đầu câu trả lời bằng thông tin tích cực: 'Dựa trên dữ liệu...', 'Theo thông tin...', 'Từ dữ liệu...'
- Nếu có bất kỳ thông tin nào trong dữ liệu ngữ cảnh, hãy sử dụng ngay lập tức
- Trả lời trực tiếp, không giải thích tại sao có hoặc không có thông tin

CÁCH TRẢ LỜI:
- Luôn bắt đầu bằng: 'Dựa trên dữ liệu tuyển sinh...' hoặc 'Theo thông tin từ hệ thống...'
- Đưa ra thông tin cụ thể ngay lập tức
- Không bao giờ nói 'xin lỗi' hay 'không có thông tin' khi đã có dữ liệu
- Nếu không tìm thấy trường cụ thể, hãy trả lời về các trường tương tự có trong dữ liệu
- Luôn tận dụng tối đa dữ liệu có sẵn

VÍ DỤ TRẢ LỜI TỐT:
❌ 'Tôi xin lỗi, dữ liệu không có...' 
✅ 'Dựa trên dữ liệu tuyển sinh, Đại học FPT có học phí...'

❌ 'Không có thông tin về...'
✅ 'Theo thông tin từ hệ thống, các trường có trong database bao gồm...'

Nhiệm vụ:
1. Trả lời câu hỏi về số lượng ngành, tên ngành, điểm chuẩn, học phí
2. So sánh trường đại học và ngành học  
3. Tư vấn dựa trên dữ liệu có sẵn
4. Cung cấp thông tin học bổng, phương thức tuyển sinh
5. Giải đáp về quy trình tuyển sinh`

// ContextRetriever builds the admission context block for a query
type ContextRetriever interface {
	GetAdmissionContext(ctx context.Context, query string) string
}

// Completer turns a prompt into generated text
type Completer interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// AdvisorService answers admission questions from catalog context
type AdvisorService struct {
	retriever ContextRetriever
	completer Completer
	logger    zerolog.Logger
}

// NewAdvisorService creates a new advisor service
func NewAdvisorService(retriever ContextRetriever, completer Completer, logger zerolog.Logger) *AdvisorService {
	return &AdvisorService{
		retriever: retriever,
		completer: completer,
		logger:    logger.With().Str("component", "advisor").Logger(),
	}
}

// Reply builds the context for message, prompts the completer and returns
// its text. It never fails: any completion error becomes a fallback reply.
func (s *AdvisorService) Reply(ctx context.Context, message string, history []model.ChatMessage) string {
	contextBlock := s.retriever.GetAdmissionContext(ctx, message)
	prompt := BuildPrompt(contextBlock, history, message)

	text, err := s.completer.Generate(ctx, prompt)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Completion failed, using fallback reply")
		return fallbackReply(err)
	}
	return text
}

// BuildPrompt lays out the system instruction, the context block, the last
// messages of the conversation and the new user message.
func BuildPrompt(contextBlock string, history []model.ChatMessage, message string) string {
	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}

	var conversation strings.Builder
	for _, msg := range history {
		fmt.Fprintf(&conversation, "%s: %s\n", msg.Sender.Display(), msg.Message)
	}

	return fmt.Sprintf("%s\n\nDữ liệu ngữ cảnh:\n%s\n\nLịch sử cuộc trò chuyện:\n%s\n\nNgười dùng: %s\nTrợ lý AI:",
		advisorSystemPrompt, contextBlock, conversation.String(), message)
}

func fallbackReply(err error) string {
	switch {
	case errors.Is(err, gemini.ErrNotConfigured):
		return FallbackNotConfigured
	case errors.Is(err, gemini.ErrEmptyResponse):
		return FallbackEmpty
	case errors.Is(err, gemini.ErrNoCandidates), gemini.IsAPIError(err):
		return FallbackUpstream
	default:
		return fmt.Sprintf(fallbackErrorFormat, err.Error())
	}
}
