package extractor

import (
	"context"
	"path/filepath"
	"slices"
	"strings"

	"github.com/fadilmartias/pitch-evaluator/internal/model"
)

// AudioFormats lists the accepted audio upload extensions.
var AudioFormats = []string{".mp3", ".wav", ".ogg", ".m4a"}

// AudioFormat returns the lowercase extension of name and whether it is accepted.
func AudioFormat(name string) (string, bool) {
	ext := strings.ToLower(filepath.Ext(name))
	return ext, slices.Contains(AudioFormats, ext)
}

// Transcriber turns an audio clip into spoken text.
type Transcriber interface {
	Transcribe(ctx context.Context, clip model.AudioClip) (string, error)
}

// StubTranscriber ignores the audio and returns PlaceholderTranscript.
// No speech-to-text service is wired; see DESIGN.md before replacing it.
type StubTranscriber struct{}

func (StubTranscriber) Transcribe(ctx context.Context, clip model.AudioClip) (string, error) {
	return PlaceholderTranscript, nil
}

// PlaceholderTranscript is the demo pitch returned for every audio upload.
const PlaceholderTranscript = `Good afternoon, everyone. I'm here to talk about a problem that's been plaguing businesses and individuals alike - the inefficiency of current widgets in the market. These widgets, which are supposed to make our lives easier, are instead causing us to waste precious time and resources. In fact, 70% of users have reported dissatisfaction with these widgets, and businesses are losing an average of 20 hours per week due to their inefficiency.

But what if I told you we have a solution? A solution that not only addresses this problem but does so in a way that saves time and resources. We've developed a new kind of widget, one that's designed for maximum efficiency. Our early testing shows that it reduces time wasted by 50%, and we've seen a 95% satisfaction rate among our test users.

Let me paint a picture for you. Imagine a business that's currently losing 20 hours a week due to widget inefficiency. With our new widget, they could potentially save 10 hours a week. That's 10 hours that could be spent on more productive tasks, leading to increased output and profits.

Our business model is simple and effective. We sell our widgets directly to businesses and individuals. By providing a product that offers real value and saves time, we're confident that our widgets will be in high demand. In fact, our market research shows a potential customer base of 1 million users.

Let's talk numbers. We project gross sales of $5 million in the first year, based on an estimated 500,000 transactions. The cost of producing these widgets is $2 million, leaving us with a gross margin of $3 million. After accounting for fixed costs of $1 million, we're looking at a net profit margin of $2 million.

In conclusion, we're offering a solution to a widespread problem, with a compelling business model and sustainable finances. We're not just selling widgets - we're selling efficiency, time savings, and satisfaction. Thank you for your time, and I look forward to your questions.`
