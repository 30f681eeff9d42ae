package assemble

import (
	"github.com/jackzampolin/hierarh/internal/fsm"
	"github.com/jackzampolin/hierarh/internal/signal"
)

// Assembler states. States named like a signal kind collect that kind.
const (
	StateExpectHeader     = "expect-header"
	StateHeader           = signal.Header
	StateExpectText       = "expect-text"
	StateBodyText         = signal.BodyText
	StateTableRow         = signal.TableRow
	StateAfterRow         = "after-row"
	StateTableSubheader   = signal.TableSubheader
	StateExpectRow        = "expect-row"
	StateFootnoteStart    = signal.FootnoteStart
	StateFootnoteBody     = signal.FootnoteBody
	StateHeaderAlt        = signal.HeaderAlt
	StateExpectTextAlt    = "expect-text-alt"
	StateBodyTextAlt      = signal.BodyTextAlt
	StateTableRowAlt      = signal.TableRowAlt
	StateAfterRowAlt      = "after-row-alt"
	StateFootnoteStartAlt = "footnote-start-alt"
	StateFootnoteBodyAlt  = signal.FootnoteBodyAlt
)

func kinds(k ...signal.Kind) []string { return k }

// states returns the assembler's transition table. The schismatic dialect
// is a near copy of the canonical one; its footnotes also accept canonical
// footnote bodies.
func states() []fsm.State {
	br := signal.LineBreak
	mark := signal.FootnoteMarker
	headers := []fsm.Transition{fsm.Edge(signal.Header), fsm.Edge(signal.HeaderAlt)}
	with := func(ts ...fsm.Transition) []fsm.Transition {
		return append(ts, headers...)
	}

	return []fsm.State{
		fsm.NewState(StateExpectHeader, kinds(br), headers...),

		fsm.NewState(StateHeader, kinds(signal.Header),
			fsm.Edge(signal.BodyText), fsm.EdgeTo(br, StateExpectText)),
		fsm.NewState(StateExpectText, kinds(br), fsm.Edge(signal.BodyText)),
		fsm.NewState(StateBodyText, kinds(signal.BodyText, br, mark),
			with(fsm.Edge(signal.TableRow), fsm.Edge(signal.TableSubheader), fsm.Edge(signal.FootnoteStart))...),
		fsm.NewState(StateTableRow, kinds(signal.TableRow, mark),
			with(fsm.EdgeTo(br, StateAfterRow), fsm.Edge(signal.FootnoteStart))...),
		fsm.NewState(StateAfterRow, kinds(br),
			with(fsm.Edge(signal.TableRow), fsm.Edge(signal.TableSubheader), fsm.Edge(signal.FootnoteStart))...),
		fsm.NewState(StateTableSubheader, kinds(signal.TableSubheader, mark),
			fsm.Edge(signal.TableRow), fsm.EdgeTo(br, StateExpectRow)),
		fsm.NewState(StateExpectRow, kinds(br), fsm.Edge(signal.TableRow)),
		fsm.NewState(StateFootnoteStart, nil, fsm.Edge(signal.FootnoteBody)),
		fsm.NewState(StateFootnoteBody, kinds(signal.FootnoteBody, br),
			with(fsm.Edge(signal.FootnoteStart))...),

		fsm.NewState(StateHeaderAlt, kinds(signal.HeaderAlt),
			fsm.Edge(signal.BodyTextAlt), fsm.EdgeTo(br, StateExpectTextAlt)),
		fsm.NewState(StateExpectTextAlt, kinds(br), fsm.Edge(signal.BodyTextAlt)),
		fsm.NewState(StateBodyTextAlt, kinds(signal.BodyTextAlt, br, mark),
			with(fsm.Edge(signal.TableRowAlt))...),
		fsm.NewState(StateTableRowAlt, kinds(signal.TableRowAlt, mark),
			with(fsm.EdgeTo(br, StateAfterRowAlt), fsm.EdgeTo(signal.FootnoteStart, StateFootnoteStartAlt))...),
		fsm.NewState(StateAfterRowAlt, kinds(br),
			with(fsm.Edge(signal.TableRowAlt), fsm.EdgeTo(signal.FootnoteStart, StateFootnoteStartAlt))...),
		fsm.NewState(StateFootnoteStartAlt, nil,
			fsm.Edge(signal.FootnoteBodyAlt), fsm.EdgeTo(signal.FootnoteBody, StateFootnoteBodyAlt)),
		fsm.NewState(StateFootnoteBodyAlt, kinds(signal.FootnoteBodyAlt, signal.FootnoteBody, br),
			with(fsm.EdgeTo(signal.FootnoteStart, StateFootnoteStartAlt))...),
	}
}
