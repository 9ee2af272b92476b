package utils

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

var sesClient *ses.Client

func InitMailer() {
	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(os.Getenv("AWS_REGION")))
	if err != nil {
		log.Fatalf("AWS config load failed: %v", err)
	}
	sesClient = ses.NewFromConfig(cfg)
}

// generic SES sender
func sendEmail(to string, subject string, body string) error {
	input := &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data: aws.String(subject),
			},
			Body: &types.Body{
				Text: &types.Content{
					Data: aws.String(body),
				},
			},
		},
		Source: aws.String(os.Getenv("SES_EMAIL")),
	}

	_, err := sesClient.SendEmail(context.TODO(), input)
	if err != nil {
		log.Printf("SES send error: %v", err)
		return fmt.Errorf("email send failed: %v", err)
	}
	return nil
}

// DailySummaryBody renders the end-of-day report text from the daily
// summary's totals map, which keys calories as "calories".
func DailySummaryBody(totals map[string]float64, advice []string) string {
	return fmt.Sprintf("You logged %.0f kcal today.\n\n%s\n", totals["calories"], strings.Join(advice, "\n"))
}

// SendDailySummaryEmail mails the end-of-day intake report.
func SendDailySummaryEmail(to string, day string, totals map[string]float64, advice []string) error {
	subject := fmt.Sprintf("Your nutrition summary for %s", day)
	return sendEmail(to, subject, DailySummaryBody(totals, advice))
}
