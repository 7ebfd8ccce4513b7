// Package fuzztests houses Go fuzz harnesses for the line scanner, the
// message views and the builder. Its goal is to guard against panics and
// broken span invariants on arbitrary input.
//
// Назначение: прогонять произвольные строки через scanner/message/validate
// и проверять, что собранная Builder строка разбирается обратно в те же
// компоненты.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/scanner, internal/message, internal/validate,
// internal/testkit.

package fuzztests
