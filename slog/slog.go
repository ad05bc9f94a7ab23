// Package slog provides log/slog decorators for storelens services.
package slog
