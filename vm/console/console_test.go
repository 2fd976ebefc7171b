package console

import "testing"

type recordSink struct {
	got []byte
}

func (s *recordSink) Send(b byte) {
	s.got = append(s.got, b)
}

func TestWriteReadyDefaultsTrue(t *testing.T) {
	c := New(2)
	if !c.WriteReady(0) {
		t.Fatal("a fresh terminal should be write-ready")
	}
	if c.ReadReady(0) {
		t.Fatal("a fresh terminal should not be read-ready")
	}
}

func TestDeliverMakesReadReady(t *testing.T) {
	c := New(1)
	c.Deliver(0, 'a')
	if !c.ReadReady(0) {
		t.Fatal("expected read-ready after Deliver")
	}
	if v := c.ReadData(0); v != 'a' {
		t.Fatalf("ReadData = %q, want 'a'", v)
	}
	if c.ReadReady(0) {
		t.Fatal("read-ready should clear once the inbox is drained")
	}
}

func TestDeliverQueuesMultipleBytes(t *testing.T) {
	c := New(1)
	c.Deliver(0, 'a')
	c.Deliver(0, 'b')
	if v := c.ReadData(0); v != 'a' {
		t.Fatalf("first ReadData = %q, want 'a'", v)
	}
	if !c.ReadReady(0) {
		t.Fatal("expected still read-ready with one byte left")
	}
	if v := c.ReadData(0); v != 'b' {
		t.Fatalf("second ReadData = %q, want 'b'", v)
	}
}

func TestWriteDataForwardsToSink(t *testing.T) {
	c := New(1)
	sink := &recordSink{}
	c.Bind(0, sink)
	c.WriteData(0, 'x')
	if len(sink.got) != 1 || sink.got[0] != 'x' {
		t.Fatalf("sink.got = %v, want ['x']", sink.got)
	}
}

func TestUnbindStopsForwarding(t *testing.T) {
	c := New(1)
	sink := &recordSink{}
	c.Bind(0, sink)
	c.Unbind(0)
	c.WriteData(0, 'x')
	if len(sink.got) != 0 {
		t.Fatalf("sink.got = %v, want none after Unbind", sink.got)
	}
}

func TestOutOfRangePIDIsHarmless(t *testing.T) {
	c := New(1)
	if c.ReadReady(5) || c.WriteReady(5) {
		t.Fatal("out-of-range pid should report false, not panic")
	}
	c.Deliver(5, 'z')
	c.WriteData(5, 'z')
}
