package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/healthassist/healthassist-go/internal/model"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Fixed reply texts
const (
	sourceTitle = "NHS Guidance"

	emptyMessageReply = "Please enter a question so I can help you."

	refusalReply = "I am a healthcare assistant and can only respond to medical or healthcare-related questions.\n\n" +
		"For non-health-related inquiries, please use a general-purpose assistant or search engine."

	urgentCareNotice = "\n\n⚠️ URGENT: If this is life-threatening, call 999 immediately.\n" +
		"For urgent but non-life-threatening medical concerns, contact NHS 111 for advice."
)

const historyTTL = 24 * time.Hour

// ChatService runs the per-request chat pipeline: scope classification,
// document selection, answer composition and emergency finalization.
// No state is shared between requests.
type ChatService struct {
	classifier  *ClassifierService
	selector    *SelectorService
	composer    *ComposerService
	redisClient *redis.Client
	logger      *zap.Logger
}

// NewChatService creates the chat pipeline. redisClient may be nil, in
// which case question history is not recorded.
func NewChatService(
	classifier *ClassifierService,
	selector *SelectorService,
	composer *ComposerService,
	redisClient *redis.Client,
	logger *zap.Logger,
) *ChatService {
	return &ChatService{
		classifier:  classifier,
		selector:    selector,
		composer:    composer,
		redisClient: redisClient,
		logger:      logger,
	}
}

// HandleMessage answers one user message. Scope rejections and empty
// input come back as normal responses; provider failures during
// classification or composition come back as errors.
func (s *ChatService) HandleMessage(ctx context.Context, username, message string) (*model.ChatResponse, error) {
	if strings.TrimSpace(message) == "" {
		return &model.ChatResponse{
			Response:   emptyMessageReply,
			Sources:    []model.Source{},
			Confidence: model.ConfidenceNotApplicable,
			Emergency:  false,
		}, nil
	}

	s.logger.Info("handling chat message",
		zap.String("username", username),
		zap.Int("length", len(message)))

	inScope, err := s.classifier.InScope(ctx, message)
	if err != nil {
		return nil, err
	}
	if !inScope {
		s.logger.Info("message out of scope", zap.String("username", username))
		return &model.ChatResponse{
			Response:   refusalReply,
			Sources:    []model.Source{},
			Confidence: model.ConfidenceNotApplicable,
			Emergency:  false,
		}, nil
	}

	selectedDocs := s.selector.Select(ctx, message)

	reply, err := s.composer.Compose(ctx, message, selectedDocs)
	if err != nil {
		return nil, err
	}

	// emergency detection runs on the raw message, independent of the
	// classification and composition outcomes
	emergency := DetectEmergency(message)
	if emergency {
		reply += urgentCareNotice
	}

	confidence := model.ConfidenceMedium
	switch {
	case emergency:
		confidence = model.ConfidenceHighEmergency
	case len(selectedDocs) > 0:
		confidence = model.ConfidenceHigh
	}

	sources := make([]model.Source, 0, len(selectedDocs))
	for _, doc := range selectedDocs {
		sources = append(sources, model.Source{Title: sourceTitle, Content: doc})
	}

	s.saveHistory(ctx, username, message)

	s.logger.Info("chat message answered",
		zap.String("username", username),
		zap.String("confidence", confidence),
		zap.Bool("emergency", emergency),
		zap.Int("sources", len(sources)))

	return &model.ChatResponse{
		Response:   reply,
		Sources:    sources,
		Confidence: confidence,
		Emergency:  emergency,
	}, nil
}

// saveHistory records the question for later review, best-effort
func (s *ChatService) saveHistory(ctx context.Context, username, message string) {
	if s.redisClient == nil {
		return
	}

	historyKey := fmt.Sprintf("chat_history:%s", username)
	if err := s.redisClient.RPush(ctx, historyKey, message).Err(); err != nil {
		s.logger.Warn("saving chat history failed", zap.Error(err))
		return
	}
	s.redisClient.Expire(ctx, historyKey, historyTTL)
}
