package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"

	"github.com/slashrage/jalapeno-business/internal/logger"
	"github.com/slashrage/jalapeno-business/internal/models"
	"github.com/slashrage/jalapeno-business/internal/notes"
	"github.com/slashrage/jalapeno-business/internal/syncstate"
)

// pause after the last file change before syncing
const debounceDelay = 2 * time.Second

type syncer struct {
	client *notes.Client
	state  *syncstate.Store

	mu     sync.Mutex
	timers map[string]*time.Timer
}

func main() {
	// .env is optional for the tool
	_ = godotenv.Load()

	if err := logger.Init(getEnv("LOG_LEVEL", "info")); err != nil {
		panic(err)
	}
	defer logger.Sync()

	notesDir := getEnv("NOTES_DIR", "")
	if notesDir == "" {
		logger.Fatal("NOTES_DIR не установлен")
	}
	if _, err := os.Stat(notesDir); err != nil {
		logger.Fatal("Каталог заметок не найден", "dir", notesDir, "error", err)
	}

	token := getEnv("SYNC_TOKEN", "")
	if token == "" {
		logger.Fatal("SYNC_TOKEN не установлен, войдите в блог и добавьте токен в .env")
	}

	apiURL := getEnv("API_URL", "http://localhost:5000/api")
	stateFile := getEnv("SYNC_STATE_FILE", ".notesync-map.json")

	state := syncstate.NewStore(stateFile)
	if err := state.Load(); err != nil {
		logger.Fatal("Не удалось загрузить состояние синхронизации", "error", err)
	}
	logger.Info("Состояние синхронизации загружено", "entries", state.Len())

	s := &syncer{
		client: notes.NewClient(apiURL, token),
		state:  state,
		timers: make(map[string]*time.Timer),
	}

	// initial sweep of the directory
	entries, err := os.ReadDir(notesDir)
	if err != nil {
		logger.Fatal("Не удалось прочитать каталог заметок", "dir", notesDir, "error", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !isMarkdown(entry.Name()) {
			continue
		}
		s.syncFile(filepath.Join(notesDir, entry.Name()))
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		logger.Fatal("Не удалось создать наблюдатель", "error", err)
	}
	defer watcher.Close()

	if err := watcher.Add(notesDir); err != nil {
		logger.Fatal("Не удалось подписаться на каталог", "dir", notesDir, "error", err)
	}

	logger.Info("Наблюдение за заметками запущено", "dir", notesDir, "api", apiURL)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !isMarkdown(event.Name) || isHidden(event.Name) {
				continue
			}
			if event.Has(fsnotify.Create) || event.Has(fsnotify.Write) {
				s.schedule(event.Name)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Error("Ошибка наблюдателя", "error", err)
		case <-stop:
			logger.Info("Остановка инструмента синхронизации")
			return
		}
	}
}

// schedule delays the sync until the file stops being written
func (s *syncer) schedule(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if timer, ok := s.timers[path]; ok {
		timer.Reset(debounceDelay)
		return
	}
	s.timers[path] = time.AfterFunc(debounceDelay, func() {
		s.mu.Lock()
		delete(s.timers, path)
		s.mu.Unlock()
		s.syncFile(path)
	})
}

func (s *syncer) syncFile(path string) {
	logger.Info("Обработка заметки", "file", filepath.Base(path))

	note, err := notes.ParseFile(path)
	if err != nil {
		logger.Error("Не удалось разобрать заметку", "file", path, "error", err)
		return
	}

	title := note.Title()
	if title == "" {
		logger.Error("Заголовок не найден ни во фронтматтере, ни в тексте", "file", path)
		return
	}

	status := note.Frontmatter.Status
	if status == "" {
		status = models.StatusDraft
	}
	tags := note.Frontmatter.Tags
	if tags == nil {
		tags = []string{}
	}

	payload := notes.PostPayload{
		Title:    title,
		Content:  note.Content,
		Excerpt:  note.Excerpt(),
		Status:   status,
		Category: note.Frontmatter.Category,
		Tags:     tags,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if postID, ok := s.state.Get(path); ok {
		result, err := s.client.UpdatePost(ctx, postID, payload)
		if err != nil {
			logger.Error("Не удалось обновить пост", "file", path, "error", err)
			return
		}
		logger.Info("Пост обновлен", "title", title, "slug", result.Slug, "status", result.Status)
		return
	}

	result, err := s.client.CreatePost(ctx, payload)
	if err != nil {
		logger.Error("Не удалось создать пост", "file", path, "error", err)
		return
	}
	if err := s.state.Set(path, result.ID); err != nil {
		logger.Error("Не удалось сохранить состояние синхронизации", "error", err)
	}
	logger.Info("Пост создан", "title", title, "id", result.ID, "slug", result.Slug, "status", result.Status)
}

func isMarkdown(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".md")
}

func isHidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
