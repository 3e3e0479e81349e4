// Copyright 2026 The corgo Authors
// SPDX-License-Identifier: BSD-3-Clause

// Command corgodemo runs the corgo pipeline headless: it builds a small
// declarative tree, drives a few update cycles through the window task
// (tab focus, a live attribute change, a resize), and saves the last
// presented frame as a PNG.
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/gogpu/gg"

	"github.com/wusyong/corgo"
	"github.com/wusyong/corgo/dom"
	"github.com/wusyong/corgo/eventloop"
	"github.com/wusyong/corgo/vdom"
	"github.com/wusyong/corgo/window"
)

func main() {
	var (
		width   = flag.Float64("width", 800, "window width in pixels")
		height  = flag.Float64("height", 600, "window height in pixels")
		output  = flag.String("output", "corgodemo.png", "output file")
		verbose = flag.Bool("v", false, "debug logging to stderr")
	)
	flag.Parse()

	if *verbose {
		corgo.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	engine := vdom.NewQueueEngine(initialTree())
	presenter := window.NewPixmapPresenter()

	app := corgo.NewApp(engine,
		corgo.WithSize(float32(*width), float32(*height)),
		corgo.WithBackground(gg.RGB(0.12, 0.12, 0.14)),
		corgo.WithPresenter(presenter),
	)

	proxy := app.Proxy()
	id := app.Window().ID()

	// Script a short interaction, then close.
	go func() {
		step := func(d time.Duration, ev eventloop.Event) {
			time.Sleep(d)
			if err := proxy.Send(ev); err != nil {
				log.Printf("inject failed: %v", err)
			}
		}
		step(50*time.Millisecond, eventloop.KeyboardInput{
			Window: id, State: eventloop.Pressed,
			Key: eventloop.KeyTab, Code: "Tab",
		})
		time.Sleep(50 * time.Millisecond)
		engine.Push([]dom.Mutation{
			dom.SetAttribute{ID: 3, Name: "background", Value: "orange"},
		})
		step(50*time.Millisecond, eventloop.Resized{
			Window: id,
			Size:   eventloop.Size{Width: float32(*width) / 2, Height: float32(*height) / 2},
		})
		step(150*time.Millisecond, eventloop.CloseRequested{Window: id})
	}()

	if err := app.Run(); err != nil {
		log.Fatalf("run failed: %v", err)
	}

	frame := presenter.Frame()
	if frame == nil {
		log.Fatal("no frame was presented")
	}
	if err := frame.Pixmap.SavePNG(*output); err != nil {
		log.Fatalf("failed to save: %v", err)
	}
	log.Printf("demo saved to %s (epoch %d, %d presents)",
		*output, frame.Epoch, presenter.Presents())
}

// initialTree describes a header bar, two focusable buttons and a text
// label.
func initialTree() []dom.Mutation {
	return []dom.Mutation{
		dom.CreateElement{ID: 2, Tag: "div"},
		dom.SetAttribute{ID: 2, Name: "background", Value: "#224"},
		dom.SetAttribute{ID: 2, Name: "height", Value: "48"},

		dom.CreateElement{ID: 3, Tag: "button"},
		dom.SetAttribute{ID: 3, Name: "background", Value: "gray"},
		dom.SetAttribute{ID: 3, Name: "width", Value: "160"},
		dom.SetAttribute{ID: 3, Name: "height", Value: "32"},
		dom.SetAttribute{ID: 3, Name: "focusable", Value: "true"},

		dom.CreateElement{ID: 4, Tag: "button"},
		dom.SetAttribute{ID: 4, Name: "background", Value: "#484"},
		dom.SetAttribute{ID: 4, Name: "width", Value: "160"},
		dom.SetAttribute{ID: 4, Name: "height", Value: "32"},
		dom.SetAttribute{ID: 4, Name: "focusable", Value: "true"},
		dom.SetAttribute{ID: 4, Name: "prevent-default", Value: "onwheel"},

		dom.CreateText{ID: 5, Text: "hello from corgo"},

		dom.AppendChildren{Parent: dom.RootID, Children: []dom.NodeID{2, 3, 4, 5}},
	}
}
