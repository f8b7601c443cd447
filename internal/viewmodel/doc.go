// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package viewmodel holds the rendering-independent state of the Mindeep
// conversation surface and its task detail overlay.
//
// A Surface is an explicit state record with transition methods. Front ends
// (the bubbletea TUI, the line REPL) feed it user intents and read state back
// for rendering; every state change is also reported as an Event to an
// optional observer.
//
// The synthetic assistant reply is scheduled on a schedule.Loop under a scope
// owned by the surface. Close tears the surface down: pending replies are
// canceled and any late delivery is ignored.
//
// # Key Types
//
//   - Surface: Message timeline, input, selection, listening flag, overlay
//   - Overlay: Closed / Open(task) state machine with its render contract
//   - Event: Notification of a state change
//
// # Usage
//
//	loop := schedule.NewLoop(schedule.Real)
//	s := viewmodel.NewSurface(viewmodel.Options{Loop: loop})
//	defer s.Close()
//
//	s.SelectTask(catalog.Summarize)
//	s.SetInput("Summarize this PDF")
//	s.SubmitInput()
//
//	// 1.5s later, from the event loop:
//	loop.RunDue(time.Now())
package viewmodel
