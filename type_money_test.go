package nivesh

import "testing"

func TestMoneyArithmetic(t *testing.T) {
	a := M(100, "INR")
	b := M(50, "INR")

	if got := a.Add(b); !got.Equal(M(150, "INR")) {
		t.Errorf("Add = %s", got)
	}
	if got := a.Sub(b); !got.Equal(M(50, "INR")) {
		t.Errorf("Sub = %s", got)
	}
	if got := a.Mul(Q(2.5)); !got.Equal(M(250, "INR")) {
		t.Errorf("Mul = %s", got)
	}
	if got := a.Div(Q(8)); !got.Equal(M(12.5, "INR")) {
		t.Errorf("Div = %s", got)
	}
	// decimal arithmetic stays exact where floats would not
	c := M(0.1, "INR").Add(M(0.2, "INR"))
	if !c.Equal(M(0.3, "INR")) {
		t.Errorf("0.1 + 0.2 = %s, want ₹0.30 exactly", c)
	}
}

func TestMoneyZeroValueIsWeak(t *testing.T) {
	// accumulating into a zero Money must adopt the other side's currency
	var total Money
	total = total.Add(M(10, "AUD"))
	if total.Currency() != "AUD" {
		t.Errorf("currency = %q, want AUD", total.Currency())
	}
}

func TestMoneyCurrencyMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("adding INR to AUD must panic")
		}
	}()
	M(1, "INR").Add(M(1, "AUD"))
}

func TestMoneyString(t *testing.T) {
	if got, want := M(1234.5, "INR").String(), "₹1,234.50"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
