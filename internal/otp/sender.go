package otp

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// LogSender writes the code to the server log instead of sending it.
type LogSender struct {
	log zerolog.Logger
}

func NewLogSender(log zerolog.Logger) *LogSender {
	return &LogSender{log: log.With().Str("component", "otp").Logger()}
}

func (s *LogSender) Name() string { return "log" }

func (s *LogSender) Send(_ context.Context, phone, code string) error {
	s.log.Info().Str("phone", phone).Str("code", code).Msg("otp issued")
	return nil
}

// messageCreator is the part of the Twilio REST client used here.
type messageCreator interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

type TwilioSender struct {
	api           messageCreator
	from          string
	countryPrefix string
	log           zerolog.Logger
}

// NewTwilioSender takes the client's Api service, e.g.
// twilio.NewRestClientWithParams(...).Api.
func NewTwilioSender(api messageCreator, from, countryPrefix string, log zerolog.Logger) *TwilioSender {
	return &TwilioSender{
		api:           api,
		from:          from,
		countryPrefix: countryPrefix,
		log:           log.With().Str("component", "otp").Logger(),
	}
}

func (s *TwilioSender) Name() string { return "twilio" }

func (s *TwilioSender) Send(_ context.Context, phone, code string) error {
	to := phone
	if !strings.HasPrefix(to, "+") {
		to = s.countryPrefix + to
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.from)
	params.SetBody(fmt.Sprintf("Your SalonGo verification code is %s", code))

	resp, err := s.api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("send otp sms: %w", err)
	}

	if resp != nil && resp.Sid != nil {
		s.log.Info().Str("phone", phone).Str("sid", *resp.Sid).Msg("otp sms sent")
	}
	return nil
}
