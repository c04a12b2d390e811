package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
	"google.golang.org/api/option"

	"tutorium/backend/config"
)

// TranscriptionError wraps any failure of the speech-to-text call so the
// route layer can report it as a structured error instead of a raw fault.
type TranscriptionError struct {
	Err error
}

func (e *TranscriptionError) Error() string {
	return fmt.Sprintf("transcription failed: %v", e.Err)
}

func (e *TranscriptionError) Unwrap() error {
	return e.Err
}

type SpeechService struct {
	credentialsFile string
	timeout         time.Duration
}

func NewSpeechService(cfg *config.Config) *SpeechService {
	return &SpeechService{
		credentialsFile: cfg.GoogleCredentials,
		timeout:         time.Minute,
	}
}

// Transcribe runs Google Cloud Speech recognition on a WAV recording. The
// sample rate and encoding are read from the WAV header by the service.
func (s *SpeechService) Transcribe(ctx context.Context, wavBytes []byte) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var opts []option.ClientOption
	if s.credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(s.credentialsFile))
	}

	client, err := speech.NewClient(ctx, opts...)
	if err != nil {
		return "", &TranscriptionError{Err: err}
	}
	defer client.Close()

	resp, err := client.Recognize(ctx, &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:     speechpb.RecognitionConfig_LINEAR16,
			LanguageCode: "en-US",
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: wavBytes},
		},
	})
	if err != nil {
		return "", &TranscriptionError{Err: err}
	}

	var parts []string
	for _, result := range resp.Results {
		if len(result.Alternatives) > 0 {
			parts = append(parts, result.Alternatives[0].Transcript)
		}
	}

	transcript := strings.TrimSpace(strings.Join(parts, " "))
	if transcript == "" {
		return "", &TranscriptionError{Err: fmt.Errorf("no speech recognized")}
	}
	return transcript, nil
}
