package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Level representa o nível de log
type Level int32

const (
	// DEBUG nível para mensagens detalhadas de depuração
	DEBUG Level = iota
	// INFO nível para informações gerais
	INFO
	// WARN nível para avisos
	WARN
	// ERROR nível para erros
	ERROR
	// FATAL nível para erros fatais (encerra o programa)
	FATAL
)

const timeFormat = "2006-01-02 15:04:05.000"

var (
	level atomic.Int32

	// Protege as saídas e os arquivos abertos
	mu sync.Mutex

	stdOut io.Writer = os.Stdout
	stdErr io.Writer = os.Stderr

	// Saídas efetivas (terminal, ou terminal + arquivo)
	out    io.Writer = os.Stdout
	errOut io.Writer = os.Stderr

	logFile *os.File
	errFile *os.File

	includeFile atomic.Bool

	// exit encerra o processo após um FATAL; substituído nos testes
	exit = os.Exit
)

func init() {
	level.Store(int32(INFO))
	includeFile.Store(true)
}

// String retorna o nome do nível
func (l Level) String() string {
	switch l {
	case DEBUG:
		return "debug"
	case INFO:
		return "info"
	case WARN:
		return "warn"
	case ERROR:
		return "error"
	case FATAL:
		return "fatal"
	}
	return fmt.Sprintf("level(%d)", int(l))
}

// tag é o rótulo de largura fixa usado nas linhas de log
func (l Level) tag() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO "
	case WARN:
		return "WARN "
	case ERROR:
		return "ERROR"
	}
	return "FATAL"
}

// ParseLevel converte o nome de um nível (como vem da configuração) em Level
func ParseLevel(name string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return DEBUG, nil
	case "", "info":
		return INFO, nil
	case "warn", "warning":
		return WARN, nil
	case "error":
		return ERROR, nil
	case "fatal", "critical":
		return FATAL, nil
	}
	return INFO, fmt.Errorf("nível de log desconhecido: %q", name)
}

// Init restaura as saídas padrão (stdout/stderr)
func Init() {
	mu.Lock()
	defer mu.Unlock()

	stdOut, stdErr = os.Stdout, os.Stderr
	rebuildOutputs()
}

// SetLevel define o nível mínimo de log
func SetLevel(l Level) {
	level.Store(int32(l))
}

// GetLevel retorna o nível atual de log
func GetLevel() Level {
	return Level(level.Load())
}

// IsDebugEnabled verifica se o nível de debug está habilitado
func IsDebugEnabled() bool {
	return GetLevel() <= DEBUG
}

// SetOutput direciona todos os níveis para w
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()

	stdOut, stdErr = w, w
	rebuildOutputs()
}

// SetIncludeFile liga ou desliga a origem [arquivo:linha] nas mensagens
func SetIncludeFile(enabled bool) {
	includeFile.Store(enabled)
}

// EnableFileLogging duplica o log em <dir>/<prefix>_<data>.log; ERROR e FATAL
// vão também para <prefix>_<data>_error.log
func EnableFileLogging(logDir, prefix string) error {
	mu.Lock()
	defer mu.Unlock()

	if err := os.MkdirAll(logDir, 0755); err != nil {
		return fmt.Errorf("erro ao criar diretório de log: %w", err)
	}

	name := time.Now().Format("20060102_150405")
	if prefix != "" {
		name = prefix + "_" + name
	}

	lf, err := openLogFile(filepath.Join(logDir, name+".log"))
	if err != nil {
		return err
	}
	ef, err := openLogFile(filepath.Join(logDir, name+"_error.log"))
	if err != nil {
		lf.Close()
		return err
	}

	closeFiles()
	logFile, errFile = lf, ef
	rebuildOutputs()

	fmt.Fprintf(out, "[%s] %s: Logging iniciado em %s\n", time.Now().Format(timeFormat), INFO.tag(), lf.Name())
	return nil
}

func openLogFile(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar arquivo de log %s: %w", path, err)
	}
	return f, nil
}

// Sync grava e fecha os arquivos de log; o terminal continua ativo
func Sync() {
	mu.Lock()
	defer mu.Unlock()

	closeFiles()
	rebuildOutputs()
}

// closeFiles deve ser chamada com mu travado
func closeFiles() {
	for _, f := range []*os.File{logFile, errFile} {
		if f != nil {
			f.Sync()
			f.Close()
		}
	}
	logFile, errFile = nil, nil
}

// rebuildOutputs deve ser chamada com mu travado
func rebuildOutputs() {
	out, errOut = stdOut, stdErr
	if logFile != nil {
		out = io.MultiWriter(stdOut, logFile)
		errOut = io.MultiWriter(stdErr, logFile, errFile)
	}
}

// Entry carrega campos chave=valor anexados a cada mensagem
type Entry struct {
	fields string
}

// With cria uma Entry com um campo
func With(key string, value interface{}) *Entry {
	return (&Entry{}).With(key, value)
}

// With retorna uma nova Entry com o campo acrescentado
func (e *Entry) With(key string, value interface{}) *Entry {
	return &Entry{fields: e.fields + fmt.Sprintf(" %s=%v", key, value)}
}

// Debugf escreve com nível DEBUG
func (e *Entry) Debugf(format string, args ...interface{}) {
	write(DEBUG, e.fields, format, args...)
}

// Infof escreve com nível INFO
func (e *Entry) Infof(format string, args ...interface{}) {
	write(INFO, e.fields, format, args...)
}

// Warnf escreve com nível WARN
func (e *Entry) Warnf(format string, args ...interface{}) {
	write(WARN, e.fields, format, args...)
}

// Errorf escreve com nível ERROR
func (e *Entry) Errorf(format string, args ...interface{}) {
	write(ERROR, e.fields, format, args...)
}

// write monta a linha "[hora] NÍVEL [arquivo:linha]: mensagem campos".
// Deve ser chamada diretamente pela função pública de log.
func write(l Level, fields, format string, args ...interface{}) {
	if l < GetLevel() {
		return
	}

	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}

	var source string
	if includeFile.Load() {
		if _, file, line, ok := runtime.Caller(2); ok {
			source = fmt.Sprintf(" [%s:%d]", filepath.Base(file), line)
		}
	}

	line := fmt.Sprintf("[%s] %s%s: %s%s\n", time.Now().Format(timeFormat), l.tag(), source, msg, fields)

	mu.Lock()
	w := out
	if l >= ERROR {
		w = errOut
	}
	io.WriteString(w, line)
	if l == FATAL {
		closeFiles()
	}
	mu.Unlock()

	if l == FATAL {
		exit(1)
	}
}

// Debug escreve mensagem de log com nível DEBUG
func Debug(msg string) {
	write(DEBUG, "", "%s", msg)
}

// Debugf escreve mensagem de log formatada com nível DEBUG
func Debugf(format string, args ...interface{}) {
	write(DEBUG, "", format, args...)
}

// Info escreve mensagem de log com nível INFO
func Info(msg string) {
	write(INFO, "", "%s", msg)
}

// Infof escreve mensagem de log formatada com nível INFO
func Infof(format string, args ...interface{}) {
	write(INFO, "", format, args...)
}

// Warn escreve mensagem de log com nível WARN
func Warn(msg string) {
	write(WARN, "", "%s", msg)
}

// Warnf escreve mensagem de log formatada com nível WARN
func Warnf(format string, args ...interface{}) {
	write(WARN, "", format, args...)
}

// Error escreve mensagem de log com nível ERROR
func Error(msg string, err error) {
	if err != nil {
		write(ERROR, "", "%s: %v", msg, err)
	} else {
		write(ERROR, "", "%s", msg)
	}
}

// Errorf escreve mensagem de log formatada com nível ERROR
func Errorf(format string, args ...interface{}) {
	write(ERROR, "", format, args...)
}

// Fatal escreve mensagem de log com nível FATAL e encerra o programa
func Fatal(msg string, err error) {
	if err != nil {
		write(FATAL, "", "%s: %v", msg, err)
	} else {
		write(FATAL, "", "%s", msg)
	}
}

// Fatalf escreve mensagem de log formatada com nível FATAL e encerra o programa
func Fatalf(format string, args ...interface{}) {
	write(FATAL, "", format, args...)
}
