package presentation

import (
	"context"
	"time"

	"socio_verify_api/types"
)

// View is everything a client needs to show a verified post.
type View struct {
	VerificationId string                 `json:"verificationId"`
	Creator        Profile                `json:"creator"`
	Text           Text                   `json:"text"`
	Spans          []Span                 `json:"spans"`
	Media          []Media                `json:"media"`
	ReplyingTo     []types.ContentReplyTo `json:"replyingTo,omitempty"`
	Timestamp      time.Time              `json:"timestamp"`
	PostURL        string                 `json:"postUrl"`
	CopyPayload    string                 `json:"copyPayload"`
}

type Options struct {
	Standalone bool
	Expanded   bool
}

type Renderer struct {
	media        MediaSource
	prober       *Prober
	profileBase  string
	probeTimeout time.Duration
	previewPath  func(cid string) string
}

func NewRenderer(media MediaSource, prober *Prober, profileBase string, probeTimeout time.Duration, previewPath func(cid string) string) *Renderer {
	return &Renderer{
		media:        media,
		prober:       prober,
		profileBase:  profileBase,
		probeTimeout: probeTimeout,
		previewPath:  previewPath,
	}
}

// Render builds the view. Image sizes that are not known when the probe
// deadline passes (or ctx ends) keep their placeholder.
func (r *Renderer) Render(ctx context.Context, post *types.Post, content *types.Content, opts Options) View {
	text := RenderText(content.Content, opts.Standalone, opts.Expanded)

	return View{
		VerificationId: post.VerificationId,
		Creator:        NewProfile(post.Creator, r.profileBase),
		Text:           text,
		Spans:          Classify(text.Displayed),
		Media:          r.layoutMedia(ctx, content.Files),
		ReplyingTo:     content.ReplyingTo,
		Timestamp:      post.Timestamp,
		PostURL:        PostURL(r.profileBase, post.Cid),
		CopyPayload:    types.NewCopyPayload(*post).String(),
	}
}

func (r *Renderer) layoutMedia(ctx context.Context, files []types.File) []Media {
	media := make([]Media, 0, len(files))
	images := 0
	for _, file := range files {
		m := Media{Cid: file.Cid, Kind: file.Kind(), URL: r.media.MediaURL(file.Cid)}
		switch m.Kind {
		case types.FILE_TYPE_IMAGE:
			box := Placeholder()
			m.Box = &box
			if r.previewPath != nil {
				m.PreviewURL = r.previewPath(file.Cid)
			}
			images++
		case types.FILE_TYPE_VIDEO:
			m.Controls = true
			m.FullWidth = true
		}
		media = append(media, m)
	}
	if images == 0 || r.prober == nil {
		return media
	}

	probeCtx := ctx
	if r.probeTimeout > 0 {
		var cancel context.CancelFunc
		probeCtx, cancel = context.WithTimeout(ctx, r.probeTimeout)
		defer cancel()
	}

	results := r.prober.Start(probeCtx, files)
	for {
		select {
		case res, ok := <-results:
			if !ok {
				return media
			}
			box := SizeFor(res.Dimensions.Width, res.Dimensions.Height)
			media[res.Index].Box = &box
			media[res.Index].Sized = true
		case <-probeCtx.Done():
			return media
		}
	}
}
