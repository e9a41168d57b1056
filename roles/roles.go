// Package roles memetakan peran pengguna ke kapabilitas, dashboard, dan menu.
// Semua aturan otorisasi berupa data sehingga bisa diuji tanpa HTTP.
package roles

import (
	"fmt"
	"strings"
)

type Role string

const (
	User         Role = "user"
	Admin        Role = "admin"
	KepalaBidang Role = "kepala_bidang"
	KepalaDinas  Role = "kepala_dinas"
)

var All = []Role{User, Admin, KepalaBidang, KepalaDinas}

// SignInPath adalah tujuan redirect untuk sesi yang tidak valid.
const SignInPath = "/sign-in"

var labels = map[Role]string{
	User:         "Pengguna (KUB)",
	Admin:        "Admin",
	KepalaBidang: "Kepala Bidang",
	KepalaDinas:  "Kepala Dinas",
}

// Parse hanya menerima salah satu dari empat peran. Bentuk "kepala bidang"
// (dengan spasi) juga diterima.
func Parse(s string) (Role, error) {
	norm := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "_")
	r := Role(norm)
	if _, ok := labels[r]; !ok {
		return "", fmt.Errorf("peran tidak dikenal: %q", s)
	}
	return r, nil
}

func (r Role) Label() string {
	if l, ok := labels[r]; ok {
		return l
	}
	return string(r)
}

func (r Role) Valid() bool {
	_, ok := labels[r]
	return ok
}

// DashboardPath adalah halaman awal peran setelah login.
func (r Role) DashboardPath() string {
	switch r {
	case User:
		return "/user/dashboard"
	case Admin:
		return "/admin/dashboard"
	case KepalaBidang:
		return "/kepala-bidang/dashboard"
	case KepalaDinas:
		return "/kepala-dinas/dashboard"
	}
	return SignInPath
}
