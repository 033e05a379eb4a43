/*
Package slipway is a deterministic slide-deck wizard engine for service
onboarding flows, backed by a spreadsheet row store and a service directory.

It separates the slide deck (Logic) from the session state (Context) and
side-effects (spreadsheet writes, directory lookups). The engine manages
transitions, response capture and history; your application ("Host") manages
I/O and the delegated calls. This Hexagonal Architecture lets Slipway be
embedded in any interface: CLI, HTTP server, or chat front end.

# Key Features

  - Deterministic Execution: given the same state and input, the transition is always reproducible.
  - Immutable Transitions: every step returns a fresh state; failures never corrupt a session.
  - Pluggable Persistence: session stores for memory and Redis, row store over xlsx.
  - Strict Contracts: deck validation up front prevents runtime surprises.

# Usage

Initialize the wizard, then drive the Render -> Input -> Transition loop.

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/opskit/slipway"
	)

	func main() {
		wiz, err := slipway.New()
		if err != nil {
			log.Fatal(err)
		}

		ctx := context.Background()
		state, err := wiz.Start("session-123")
		if err != nil {
			log.Fatal(err)
		}

		for {
			view, err := wiz.Render(state)
			if err != nil {
				log.Fatal(err)
			}
			fmt.Print(view.Markdown)

			if view.Terminal {
				break
			}

			// In a real host this input comes from the user.
			state, err = wiz.Select(ctx, state, view.Slide.Options[0].Value)
			if err != nil {
				log.Fatal(err)
			}
		}
	}

Sub-states (the service-name prompt and the service selection) hand an
UpdateRequest back to the host, which performs the spreadsheet append. See
pkg/runner for a complete terminal host and pkg/adapters/httpapi for the
HTTP one.
*/
package slipway
