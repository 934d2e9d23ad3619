package domain

import "testing"

func TestUser_EntryTimezone(t *testing.T) {
	override := "Asia/Tokyo"
	empty := ""

	tests := []struct {
		name     string
		user     User
		override *string
		want     string
	}{
		{name: "override wins", user: User{Timezone: "Europe/Amsterdam"}, override: &override, want: "Asia/Tokyo"},
		{name: "empty override falls through", user: User{Timezone: "Europe/Amsterdam"}, override: &empty, want: "Europe/Amsterdam"},
		{name: "user timezone", user: User{Timezone: "Europe/Amsterdam"}, override: nil, want: "Europe/Amsterdam"},
		{name: "UTC fallback", user: User{}, override: nil, want: "UTC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.user.EntryTimezone(tt.override); got != tt.want {
				t.Errorf("EntryTimezone() = %q, want %q", got, tt.want)
			}
		})
	}
}
