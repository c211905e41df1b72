// Package fuzztests houses Go fuzz harnesses that push arbitrary bytes
// through the front end (lexer -> parser -> codegen). They guard against
// panics, hangs and broken span invariants.
//
// Назначение: прогонять байты через лексер, парсер и codegen и проверять
// инварианты из internal/testkit.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
