package server

import (
	"testing"

	"tactica/grid"
	"tactica/round"
)

func TestParseInput(t *testing.T) {
	cases := []struct {
		msg     InputMessage
		kind    round.Kind
		wantErr bool
	}{
		{InputMessage{Type: "move_far", Actor: "a", X: 3, Y: 4, Seq: 1}, round.KindMoveFar, false},
		{InputMessage{Type: "MOVE_TO", Actor: "a", X: 1}, round.KindMoveTo, false},
		{InputMessage{Type: "end_turn", Actor: "a"}, round.KindEndTurn, false},
		{InputMessage{Type: "nop", Actor: "a"}, round.KindNop, false},
		{InputMessage{Type: "recv_turn", Actor: "a"}, 0, true},
		{InputMessage{Type: "end_round", Actor: "a"}, 0, true},
		{InputMessage{Type: "move_far"}, 0, true},
	}
	for _, tc := range cases {
		in, err := ParseInput("alice", tc.msg)
		if tc.wantErr {
			if err == nil {
				t.Errorf("%+v: expected error", tc.msg)
			}
			continue
		}
		if err != nil {
			t.Errorf("%+v: %v", tc.msg, err)
			continue
		}
		if in.Kind != tc.kind || in.PlayerID != "alice" || in.To != grid.C(tc.msg.X, tc.msg.Y) || in.Seq != tc.msg.Seq {
			t.Errorf("%+v parsed as %+v", tc.msg, in)
		}
	}
}

func TestInputCommandUsesTimings(t *testing.T) {
	tm := round.DefaultTimings
	tm.MoveToSec = 0.7
	cmd := Input{Kind: round.KindMoveTo, Actor: "a", To: grid.C(1, 1)}.command(tm)
	if cmd.Kind != round.KindMoveTo || cmd.Timer != 0.7 || cmd.Who != "a" {
		t.Fatalf("cmd = %+v", cmd)
	}
	if cmd := (Input{Kind: round.KindNop}).command(tm); cmd.Kind != round.KindNop || cmd.Timer != tm.NopSec {
		t.Fatalf("nop = %+v", cmd)
	}
}
