package buffer

import "testing"

func TestByteOrderString(t *testing.T) {
	if BigEndian.String() == LittleEndian.String() {
		t.Fatalf("BigEndian and LittleEndian should stringify differently")
	}
}

func TestNativeOrderIsBigOrLittle(t *testing.T) {
	if NativeOrder != BigEndian && NativeOrder != LittleEndian {
		t.Fatalf("NativeOrder must resolve to one of the two known orders")
	}
}
