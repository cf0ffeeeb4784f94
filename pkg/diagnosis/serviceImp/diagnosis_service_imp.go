package serviceImp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"krishi/entities"
	actRepo "krishi/pkg/activity/repository"
	"krishi/pkg/ai"
	"krishi/pkg/classifier"
	"krishi/pkg/diagnosis/service"
)

const (
	msgModelUnavailable = "Model unavailable"
	msgAnalysisFailed   = "Analysis Failed"
	msgUnknownLeaf      = "Unknown or Not a Plant Leaf"
	msgNoCare           = "AI assistant unavailable for care instructions."
)

const diagnosisPrompt = `Analyze this plant image.
1. Identify the plant name.
2. Determine if it is Healthy or has a Disease/Pest/Deficiency.
3. If diseased, name the disease specifically.
4. Provide a confidence level (High/Medium/Low).

Format the answer as:
"Diagnosis: [Plant Name] - [Disease Name/Healthy] ([Confidence])"

Then provide two distinct sections for care:

**🍃 Natural/Organic Control:**
- [Bullet point 1]
- [Bullet point 2]

**🧪 Chemical Control:**
- [Bullet point 1]
- [Bullet point 2]`

// Classifier is the offline fallback.
type Classifier interface {
	Classify(img []byte) (classifier.Prediction, error)
}

type Options struct {
	Timeout   time.Duration
	Threshold float64
}

type diagSvc struct {
	llm        ai.Client
	classifier Classifier
	activities actRepo.ActivityRepository
	opts       Options
	log        *zap.Logger
}

func NewDiagnosisService(llm ai.Client, cls Classifier, activities actRepo.ActivityRepository, opts Options, log *zap.Logger) service.DiagnosisService {
	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Second
	}
	return &diagSvc{llm: llm, classifier: cls, activities: activities, opts: opts, log: log}
}

func (s *diagSvc) Diagnose(ctx context.Context, phone string, img []byte, filename string) (*service.Result, error) {
	var res *service.Result
	if s.llm.Configured() {
		text, err := s.remote(ctx, img)
		switch {
		case err == nil:
			res = parseRemote(text)
		case errors.Is(err, context.DeadlineExceeded):
			s.log.Warn("remote diagnosis timed out, using offline model", zap.Duration("timeout", s.opts.Timeout))
		default:
			s.log.Warn("remote diagnosis failed, using offline model", zap.Error(err))
		}
	}
	if res == nil {
		res = s.offline(img)
	}

	entry := &entities.ActivityLogEntry{
		FarmerPhone:  phone,
		ActivityType: entities.ActivityDiagnosis,
		Content:      filename,
		Response:     res.Prediction,
	}
	if err := s.activities.Append(ctx, entry); err != nil {
		s.log.Error("append diagnosis to activity log", zap.String("farmer_phone", phone), zap.Error(err))
	}
	return res, nil
}

// remote runs the vision call in its own goroutine and gives up when the
// timeout fires; the abandoned call sees its context cancelled.
func (s *diagSvc) remote(ctx context.Context, img []byte) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()

	type reply struct {
		text string
		err  error
	}
	done := make(chan reply, 1)
	go func() {
		text, err := s.llm.Generate(ctx, diagnosisPrompt, &ai.Image{Data: img, MIMEType: http.DetectContentType(img)})
		done <- reply{text, err}
	}()

	select {
	case r := <-done:
		return r.text, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func parseRemote(text string) *service.Result {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	first := strings.TrimSpace(lines[0])
	if !strings.Contains(first, "Diagnosis:") {
		first = "Diagnosis: " + first
	}
	return &service.Result{
		Prediction: first,
		Care:       strings.TrimSpace(strings.Join(lines[1:], "\n")),
		Source:     service.SourceRemote,
	}
}

func (s *diagSvc) offline(img []byte) *service.Result {
	res := &service.Result{Source: service.SourceOffline}
	p, err := s.classifier.Classify(img)
	switch {
	case errors.Is(err, classifier.ErrModelUnavailable):
		res.Prediction = msgModelUnavailable
	case err != nil:
		s.log.Warn("offline classification failed", zap.Error(err))
		res.Prediction = msgAnalysisFailed
	case p.Confidence > s.opts.Threshold:
		name := strings.ReplaceAll(strings.ReplaceAll(p.Label, "___", " "), "_", " ")
		res.Prediction = fmt.Sprintf("Diagnosis (Offline Model): %s (%.2f%%)", name, p.Confidence*100)
		res.Care = msgNoCare
	default:
		res.Prediction = msgUnknownLeaf
	}
	return res
}
