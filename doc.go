// Package vtengine implements a headless VT220/xterm-compatible terminal
// emulator: a byte-stream-driven state machine that maintains an in-memory
// model of a rectangular text screen plus scrollback, and translates
// keyboard/mouse events back into the byte sequences a shell or curses
// program expects.
//
// # Quick Start
//
//	eng := vtengine.New(vtengine.WithSize(24, 80))
//	eng.Write([]byte("\x1b[31mHello\x1b[0m"))
//	fmt.Println(eng.LineContent(0))
//
// # Architecture
//
// The engine is organized around these pieces:
//
//   - [Screen]: a grid of [Cell] values plus scrollback, cursor, tab stops
//     and scroll region (the "primary" or "alternate" buffer).
//   - [Parser]: the escape-sequence state machine that turns bytes into
//     calls against a [Sink], the interface [Engine] implements.
//   - the write scheduler: splits large writes into slices so a flood of
//     output still yields periodic refresh events instead of one at the end;
//     the whole write is still processed within the Write call.
//   - [TranslateKey] / [TranslateMouse]: map tcell keyboard/mouse events to
//     the byte sequences the remote program expects.
//   - [Engine]: binds all of the above and exposes the public surface:
//     construction, resize, write, and event subscription.
//
// The engine never performs I/O itself and never panics or returns an
// error from [Engine.Write] — malformed or unknown sequences are silently
// dropped from the rendering path, because real terminal consumers must
// tolerate garbled output. When [WithDebug] is set, dropped sequences are
// also recorded to a bounded ring retrievable via [Engine.Warnings], for
// callers that want visibility without changing the no-error contract.
package vtengine
