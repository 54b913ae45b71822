package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/MKhiriev/t4-api/models"
)

const maxGreetingNameLength = 64

type greetingService struct {
	now func() time.Time
}

func NewGreetingService() GreetingService {
	return &greetingService{now: time.Now}
}

func (s *greetingService) Greet(ctx context.Context, req models.GreetingRequest) (models.Greeting, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = "world"
	}
	if utf8.RuneCountInString(name) > maxGreetingNameLength {
		return models.Greeting{}, fmt.Errorf("%w: name is longer than %d characters", ErrInvalidDataProvided, maxGreetingNameLength)
	}

	return models.Greeting{
		Message:    "Hello, " + name + "!",
		ServerTime: s.now(),
	}, nil
}
