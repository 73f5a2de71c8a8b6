// Package errors はdataprep全体のエラーハンドリングと警告システムを提供します。
// すべてのエラーは cockroachdb/errors でスタックトレースを付与され、
// 構造化ログ（slog / zerolog）にそのまま渡せる形になっています。
package errors

import (
	"fmt"
	"log"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	グローバル警告ハンドリング
//
// ===========================================================================
var (
	warningMutex   sync.Mutex
	warningHandler = func(w error) {
		// デフォルトのハンドラは標準エラー出力にログを出す
		log.Printf("dataprep-warning: %v\n", w)
	}
	// zerologロガー（循環importを避けるため pkg/log から注入される）
	zerologWarnFunc func(warning error)
)

// SetWarningHandler は警告ハンドラを設定します。
//
// 例:
//
//	errors.SetWarningHandler(func(w error) {
//	    // 警告を無視する
//	})
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
}

// SetZerologWarnFunc はzerolog警告関数を設定します（nilで解除）。
func SetZerologWarnFunc(warnFunc func(warning error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	zerologWarnFunc = warnFunc
}

// Warn は警告を発生させます。
// zerologが設定されている場合は構造化ログとして出力し、そうでなければ従来のハンドラを使用します。
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()

	if zerologWarnFunc != nil {
		zerologWarnFunc(w)
		return
	}
	if warningHandler != nil {
		warningHandler(w)
	}
}

// ===========================================================================
//
//	警告型
//
// ===========================================================================

// DegenerateColumnWarning は列の範囲または標準偏差がほぼ0でスケーリングできない場合の警告です。
// この場合、除数は1に置き換えられ、値はシフトのみされます。
type DegenerateColumnWarning struct {
	Op     string
	Column int
	Reason string
}

func (w *DegenerateColumnWarning) Error() string {
	return fmt.Sprintf("%s: column %d is degenerate (%s); divisor replaced by 1", w.Op, w.Column, w.Reason)
}

// MarshalZerologObject はzerologのイベントに構造化された警告情報を追加します。
func (w *DegenerateColumnWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("operation", w.Op).
		Int("column", w.Column).
		Str("reason", w.Reason).
		Str("type", "DegenerateColumnWarning")
}

// NewDegenerateColumnWarning は新しいDegenerateColumnWarningを作成します。
func NewDegenerateColumnWarning(op string, column int, reason string) *DegenerateColumnWarning {
	return &DegenerateColumnWarning{Op: op, Column: column, Reason: reason}
}

// ===========================================================================
//
//	構造化されたエラー型
//
// ===========================================================================

// NotFittedError は未学習の変換器で `Transform` などを呼び出した場合のエラーです。
type NotFittedError struct {
	ModelName string
	Method    string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("dataprep: %s: not fitted yet. Call Fit() before using %s()", e.ModelName, e.Method)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *NotFittedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("model_name", e.ModelName).
		Str("method", e.Method).
		Str("type", "NotFittedError")
}

// NewNotFittedError は新しいNotFittedErrorを作成し、スタックトレースを付与します。
func NewNotFittedError(modelName, method string) error {
	return errors.WithStack(&NotFittedError{ModelName: modelName, Method: method})
}

// DimensionError は入力データの次元が期待値と異なる場合のエラーです。
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int // 0 for rows, 1 for columns/features
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("dataprep: %s: dimension mismatch on axis %d (%s). Expected %d, got %d",
		e.Op, e.Axis, axisName(e.Axis), e.Expected, e.Got)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Int("axis", e.Axis).
		Str("axis_name", axisName(e.Axis)).
		Str("type", "DimensionError")
}

func axisName(axis int) string {
	if axis == 0 {
		return "rows"
	}
	return "features"
}

// NewDimensionError は新しいDimensionErrorを作成し、スタックトレースを付与します。
func NewDimensionError(op string, expected, got, axis int) error {
	return errors.WithStack(&DimensionError{Op: op, Expected: expected, Got: got, Axis: axis})
}

// ValidationError は入力パラメータの検証に失敗した場合のエラーです。
type ValidationError struct {
	ParamName string
	Reason    string
	Value     interface{}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("dataprep: validation failed for parameter '%s': %s (got: %v)", e.ParamName, e.Reason, e.Value)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *ValidationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("param_name", e.ParamName).
		Str("reason", e.Reason).
		Interface("value", e.Value).
		Str("type", "ValidationError")
}

// NewValidationError は新しいValidationErrorを作成し、スタックトレースを付与します。
func NewValidationError(param, reason string, value interface{}) error {
	return errors.WithStack(&ValidationError{ParamName: param, Reason: reason, Value: value})
}

// ValueError は引数の値が不適切な場合のエラーです。
// 例えば、HOGの平方根変換に負の画素値が渡された場合など。
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("dataprep: %s: %s", e.Op, e.Message)
}

// NewValueError は新しいValueErrorを作成し、スタックトレースを付与します。
func NewValueError(op, message string) error {
	return errors.WithStack(&ValueError{Op: op, Message: message})
}

// ModelError は変換器に関する一般的なエラーです。
type ModelError struct {
	Op   string
	Kind string
	Err  error
}

func (e *ModelError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("dataprep: %s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("dataprep: %s: %s", e.Op, e.Kind)
}

func (e *ModelError) Unwrap() error {
	return e.Err
}

// NewModelError は新しいModelErrorを作成し、スタックトレースを付与します。
func NewModelError(op, kind string, err error) error {
	return errors.WithStack(&ModelError{Op: op, Kind: kind, Err: err})
}

// ParseError は入力ファイルのフィールドを数値に変換できない場合のエラーです。
// Row は1始まりの行番号、Column は0始まりの列番号です。
type ParseError struct {
	Row    int
	Column int
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("dataprep: row %d, column %d: cannot parse %q as a number: %v", e.Row, e.Column, e.Value, e.Err)
	}
	return fmt.Sprintf("dataprep: row %d, column %d: cannot parse %q as a number", e.Row, e.Column, e.Value)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *ParseError) MarshalZerologObject(event *zerolog.Event) {
	event.Int("row", e.Row).
		Int("column", e.Column).
		Str("value", e.Value).
		Str("type", "ParseError")
}

// NewParseError は新しいParseErrorを作成し、スタックトレースを付与します。
func NewParseError(row, column int, value string, err error) error {
	return errors.WithStack(&ParseError{Row: row, Column: column, Value: value, Err: err})
}

// ColumnRangeError はラベル列の番号が行の列数を超えている場合のエラーです。
type ColumnRangeError struct {
	Row    int
	Column int
	Width  int
}

func (e *ColumnRangeError) Error() string {
	return fmt.Sprintf("dataprep: row %d: label column %d out of range for %d fields", e.Row, e.Column, e.Width)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *ColumnRangeError) MarshalZerologObject(event *zerolog.Event) {
	event.Int("row", e.Row).
		Int("column", e.Column).
		Int("width", e.Width).
		Str("type", "ColumnRangeError")
}

// NewColumnRangeError は新しいColumnRangeErrorを作成し、スタックトレースを付与します。
func NewColumnRangeError(row, column, width int) error {
	return errors.WithStack(&ColumnRangeError{Row: row, Column: column, Width: width})
}

// UnknownLabelError はエンコーダが学習していないラベルを変換しようとした場合のエラーです。
type UnknownLabelError struct {
	Label string
	Known int
}

func (e *UnknownLabelError) Error() string {
	return fmt.Sprintf("dataprep: label %q was not seen during Fit (%d known classes)", e.Label, e.Known)
}

// NewUnknownLabelError は新しいUnknownLabelErrorを作成し、スタックトレースを付与します。
func NewUnknownLabelError(label string, known int) error {
	return errors.WithStack(&UnknownLabelError{Label: label, Known: known})
}

// ===========================================================================
//
//	cockroachdb/errors ラッパー関数
//
// ===========================================================================

// Is はエラーが特定のターゲットエラーかどうかを判定します。
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As はエラーが特定の型にキャスト可能かどうかを判定します。
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap は既存のエラーをメッセージ付きでラップします。
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf は既存のエラーをフォーマット文字列でラップします。
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New は新しいエラーを作成します。
func New(message string) error {
	return errors.New(message)
}

// Newf は新しいフォーマット済みエラーを作成します。
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack はエラーにスタックトレースを付与します。
func WithStack(err error) error {
	return errors.WithStack(err)
}

// ===========================================================================
//
//	共通エラー変数
//
// ===========================================================================

var (
	// ErrEmptyData は空のデータが渡された場合のエラーです。
	ErrEmptyData = New("empty data")
)
