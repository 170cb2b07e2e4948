// Package tui provides the terminal user interface for Maestro's interactive mode.
//
// The chat TUI shows a scrolling transcript, a spinner while a turn is in
// flight, and dim progress lines as the supervisor moves through plan steps.
//
// Usage:
//
//	program, app := tui.NewChatProgram()
//	app.SetSubmitHandler(func(text string) {
//	    go func() {
//	        // run the turn, then:
//	        program.Send(tui.TurnResultMsg{Response: answer})
//	    }()
//	})
//	program.Run()
//
// Supervisor events are forwarded as they happen:
//
//	program.Send(tui.SupervisorEventMsg{Event: ev})
package tui
