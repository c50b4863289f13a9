package main

import (
	"context"
	"flag"
	"log/slog"
	"time"

	"MedPet/ai/consultant"
	"MedPet/bot"
	"MedPet/bot/chat"
	"MedPet/bot/whatsapp"
	"MedPet/internal/config"
	repository "MedPet/internal/database"
	"MedPet/internal/http-server/api"
	"MedPet/internal/i18n"
	"MedPet/internal/lib/logger"
	"MedPet/internal/lib/sl"
	"MedPet/internal/service/recorder"
	"MedPet/internal/service/sheets"
	"MedPet/internal/service/transcript"
	"MedPet/internal/ws"
)

func main() {

	configPath := flag.String("conf", "config.yml", "path to config file")
	logPath := flag.String("log", "/var/log/", "path to log file directory")
	flag.Parse()

	conf := config.MustLoad(*configPath)
	lg := logger.SetupLogger(conf.Env, *logPath)

	// Initialize Telegram bot if enabled
	var tgBot *bot.TgBot
	if conf.Telegram.Enabled {
		var err error
		tgBot, err = bot.NewTgBot(conf.Telegram.BotName, conf.Telegram.ApiKey, conf.Telegram.AdminId, lg)
		if err != nil {
			lg.Error("failed to initialize telegram bot", slog.String("error", err.Error()))
		} else {
			lg = logger.SetupTelegramHandler(lg, tgBot, slog.LevelError)
			lg.With(
				slog.String("bot_name", conf.Telegram.BotName),
			).Info("telegram bot initialized")
		}
	}

	lg.Info("starting medpet", slog.String("config", *configPath), slog.String("env", conf.Env))
	lg.Debug("debug messages enabled")

	db, err := repository.NewMongoClient(conf, lg)
	if err != nil {
		lg.With(
			sl.Err(err),
		).Error("mongo client")
	}

	var sessions chat.SessionStorage
	if db != nil {
		if err := db.EnsureSessionIndexes(); err != nil {
			lg.With(sl.Err(err)).Error("session indexes")
		}
		if err := db.EnsureChatMessageIndexes(); err != nil {
			lg.With(sl.Err(err)).Error("chat message indexes")
		}
		sessions = chat.NewMongoSessionStorage(db)
		lg.With(
			slog.String("host", conf.Mongo.Host),
			slog.String("port", conf.Mongo.Port),
			slog.String("database", conf.Mongo.Database),
		).Info("mongo client initialized")
	} else {
		sessions = chat.NewMemorySessionStorage(time.Duration(conf.Mongo.ExpiredDays) * 24 * time.Hour)
		lg.Info("using in-memory session storage")
	}

	catalog := i18n.New(conf.Bot.Language)
	composer := chat.NewComposer(catalog, conf.Bot.BusinessName)
	greetings := chat.NewGreetingClassifier(catalog)

	appointmentFlow := chat.NewAppointmentFlow(sessions, composer, conf.Bot.MaxInputChars, lg)
	if conf.Sheets.Enabled {
		sheetsRecorder, err := sheets.NewRecorder(context.Background(), conf.Sheets.CredentialsFile, conf.Sheets.SpreadsheetID, conf.Sheets.Range, lg)
		if err != nil {
			lg.With(sl.Err(err)).Error("sheets recorder")
		} else {
			appointmentFlow.AddRecorder(sheetsRecorder)
			lg.With(
				sl.Secret("spreadsheet_id", conf.Sheets.SpreadsheetID),
			).Info("sheets recorder initialized")
		}
	}
	if db != nil {
		appointmentFlow.AddRecorder(recorder.NewMongoArchive(db))
	}
	if tgBot != nil {
		appointmentFlow.AddRecorder(recorder.NewTelegramNotify(tgBot))
	}

	hub := ws.NewHub(lg)
	go hub.Run()
	appointmentFlow.AddRecorder(recorder.NewConsoleBroadcast(hub))

	assistant := consultant.New(conf.OpenAI.ApiKey, conf.OpenAI.Model, conf.OpenAI.RolePrompt, lg)
	assistantFlow := chat.NewAssistantFlow(sessions, composer, assistant, time.Duration(conf.Bot.AskTimeoutSec)*time.Second, lg)

	menu := chat.NewMenuDispatcher(sessions, composer, appointmentFlow, assistantFlow, lg)
	router := chat.NewRouter(
		sessions,
		nil, // gateway set below once the bot exists
		composer,
		greetings,
		menu,
		appointmentFlow,
		assistantFlow,
		time.Duration(conf.Bot.DedupWindowSec)*time.Second,
		lg,
	)

	var store transcript.MessageStore
	if db != nil {
		store = db
	}
	router.SetMessageListener(transcript.NewFeed(store, hub, lg))

	waBot := whatsapp.NewWhatsAppBot(
		conf.WhatsApp.AccessToken,
		conf.WhatsApp.VerifyToken,
		conf.WhatsApp.AppSecret,
		conf.WhatsApp.PhoneNumberID,
		lg,
	)
	waBot.SetRouter(router)
	router.SetGateway(waBot)
	lg.With(
		sl.Secret("access_token", conf.WhatsApp.AccessToken),
		slog.String("phone_number_id", conf.WhatsApp.PhoneNumberID),
	).Info("whatsapp bot initialized")

	var archive api.Archive
	if db != nil {
		archive = db
	}

	// *** blocking start with http server ***
	err = api.New(conf, lg, waBot, hub, archive)
	if err != nil {
		lg.Error("server start", sl.Err(err))
		return
	}
	lg.Error("service stopped")
}
