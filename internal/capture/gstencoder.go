// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package capture

import (
	"context"
	"fmt"
	"image"
	"os"
	"time"

	"github.com/tinyzimmer/go-gst/gst"
	"github.com/tinyzimmer/go-gst/gst/app"
)

// GstEncoder encodes pushed RGBA frames to VP9 in a WebM container through
// a GStreamer pipeline:
//
//	appsrc → videoconvert → vp9enc → webmmux → filesink
//
// The muxer needs a seekable target, so the pipeline writes to a temp file
// that Finish reads back and removes.
type GstEncoder struct {
	pipeline *gst.Pipeline
	src      *app.Source
	path     string

	frameDur time.Duration
	pts      time.Duration
}

// NewGstEncoder returns an unstarted encoder. The GStreamer pipeline is
// built in Start, once the frame geometry is known.
func NewGstEncoder() *GstEncoder {
	return &GstEncoder{}
}

// Start builds and starts the encoding pipeline for the given geometry.
func (e *GstEncoder) Start(ctx context.Context, width, height, fps int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	gst.Init(nil)

	tmp, err := os.CreateTemp("", "capture-*.webm")
	if err != nil {
		return fmt.Errorf("gst: temp file: %w", err)
	}
	tmp.Close()
	e.path = tmp.Name()

	pipeline, err := gst.NewPipeline("")
	if err != nil {
		return fmt.Errorf("gst: failed to create pipeline: %w", err)
	}

	src, err := app.NewAppSrc()
	if err != nil {
		return fmt.Errorf("gst: failed to create appsrc: %w", err)
	}
	src.SetCaps(gst.NewCapsFromString(fmt.Sprintf(
		"video/x-raw,format=RGBA,width=%d,height=%d,framerate=%d/1", width, height, fps)))
	src.SetProperty("format", gst.FormatTime)
	src.SetProperty("block", true)

	videoconvert, err := gst.NewElement("videoconvert")
	if err != nil {
		return fmt.Errorf("gst: failed to create videoconvert: %w", err)
	}

	vp9enc, err := gst.NewElement("vp9enc")
	if err != nil {
		return fmt.Errorf("gst: failed to create vp9enc: %w", err)
	}
	// Realtime deadline keeps export times reasonable on CPU encoders.
	vp9enc.SetProperty("deadline", int64(1))

	webmmux, err := gst.NewElement("webmmux")
	if err != nil {
		return fmt.Errorf("gst: failed to create webmmux: %w", err)
	}

	filesink, err := gst.NewElement("filesink")
	if err != nil {
		return fmt.Errorf("gst: failed to create filesink: %w", err)
	}
	filesink.SetProperty("location", e.path)

	pipeline.AddMany(src.Element, videoconvert, vp9enc, webmmux, filesink)
	if err := gst.ElementLinkMany(src.Element, videoconvert, vp9enc, webmmux, filesink); err != nil {
		e.cleanup()
		return fmt.Errorf("gst: failed to link pipeline elements: %w", err)
	}

	if err := pipeline.SetState(gst.StatePlaying); err != nil {
		e.cleanup()
		return fmt.Errorf("gst: failed to start pipeline: %w", err)
	}

	e.pipeline = pipeline
	e.src = src
	e.frameDur = time.Second / time.Duration(fps)
	e.pts = 0
	return nil
}

// Push feeds one frame into the pipeline, stamping it at the next frame
// interval.
func (e *GstEncoder) Push(frame *image.RGBA) error {
	buffer := gst.NewBufferFromBytes(frame.Pix)
	buffer.SetPresentationTimestamp(e.pts)
	buffer.SetDuration(e.frameDur)
	e.pts += e.frameDur

	if ret := e.src.PushBuffer(buffer); ret != gst.FlowOK {
		return fmt.Errorf("gst: push buffer: flow %v", ret)
	}
	return nil
}

// Finish signals end of stream, waits for the muxer to flush, and returns
// the finished WebM bytes.
func (e *GstEncoder) Finish() ([]byte, error) {
	defer e.cleanup()

	e.src.EndStream()

	bus := e.pipeline.GetPipelineBus()
	msg := bus.TimedPopFiltered(gst.ClockTimeNone, gst.MessageEOS|gst.MessageError)
	if msg != nil && msg.Type() == gst.MessageError {
		return nil, fmt.Errorf("gst: pipeline error: %s", msg.ParseError().Error())
	}

	e.pipeline.SetState(gst.StateNull)
	data, err := os.ReadFile(e.path)
	if err != nil {
		return nil, fmt.Errorf("gst: read output: %w", err)
	}
	return data, nil
}

// Abort tears the pipeline down without flushing, discarding the partial
// output file.
func (e *GstEncoder) Abort() {
	e.cleanup()
}

func (e *GstEncoder) cleanup() {
	if e.pipeline != nil {
		e.pipeline.SetState(gst.StateNull)
		e.pipeline = nil
		e.src = nil
	}
	if e.path != "" {
		os.Remove(e.path)
		e.path = ""
	}
}
