package serviceImp

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"krishi/entities"
	actRepo "krishi/pkg/activity/repository"
	"krishi/pkg/ai"
	"krishi/pkg/qa/service"
)

type qaSvc struct {
	llm        ai.Client
	activities actRepo.ActivityRepository
	log        *zap.Logger
}

func NewQAService(llm ai.Client, activities actRepo.ActivityRepository, log *zap.Logger) service.QAService {
	return &qaSvc{llm: llm, activities: activities, log: log}
}

func (s *qaSvc) Answer(ctx context.Context, f *entities.Farmer, question string) string {
	if !s.llm.Configured() {
		return service.MsgNotConfigured
	}
	question = strings.TrimSpace(question)
	if question == "" {
		return service.MsgEmptyQuestion
	}

	answer, err := s.llm.Generate(ctx, questionPrompt(f, question), nil)
	if err != nil {
		s.log.Warn("question not answered", zap.String("farmer_phone", f.Phone), zap.Error(err))
		return service.MsgUnavailable
	}
	entry := &entities.ActivityLogEntry{
		FarmerPhone:  f.Phone,
		ActivityType: entities.ActivityQuestion,
		Content:      question,
		Response:     answer,
	}
	if err := s.activities.Append(ctx, entry); err != nil {
		s.log.Error("append question to activity log", zap.String("farmer_phone", f.Phone), zap.Error(err))
	}
	return answer
}

func questionPrompt(f *entities.Farmer, question string) string {
	location, crop := "N/A", "N/A"
	if f.Location != "" {
		location = f.Location
	}
	if f.Crop != "" {
		crop = f.Crop
	}
	return fmt.Sprintf("You are Krishi Sakhi, an expert AI assistant for farmers in Kerala, India. "+
		"Provide a clear, concise, and helpful answer. Farmer's Context: Location: %s, Main Crop: %s. "+
		"Farmer's Question: %q\nAnswer:", location, crop, question)
}
