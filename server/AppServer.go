package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"runtime/debug"

	"github.com/karlseguin/ccache/v2"
	"go.uber.org/zap"

	"github.com/NiubilityNetCore/claim-share-server/auth"
	"github.com/NiubilityNetCore/claim-share-server/config"
	"github.com/NiubilityNetCore/claim-share-server/dao"
	"github.com/NiubilityNetCore/claim-share-server/events"
	"github.com/NiubilityNetCore/claim-share-server/metadata/models"
	"github.com/NiubilityNetCore/claim-share-server/protocol"
	"github.com/NiubilityNetCore/claim-share-server/share"
	"github.com/NiubilityNetCore/claim-share-server/util"
)

// Constants serve as keys for setting values on a request-scoped Context.
const (
	CallerVal = iota
	CaptureGroupsVal
	UserVal
	Logger
	SessionID
	DAO
)

// AppServer is an http.Handler implementation that holds most service dependencies.
type AppServer struct {
	// Port is the TCP port that the web server listens on.
	Port string
	// Bind is the Network Address that the web server will use.
	Bind string
	// Addr is the combined network address and port the server listens on.
	Addr string
	// RootDAO is the interface contract with the database.
	RootDAO dao.DAO
	// Conf is the configuration passed to the application.
	Conf config.ServerSettingsConfiguration
	// ServicePrefix is the base url. Used when matching routes.
	ServicePrefix string
	// Auth resolves effective claims for authorization checks.
	Auth auth.Authorization
	// Share performs the gated share and group mutations.
	Share *share.Manager
	// EventQueue is a Publisher interface we use to publish our main event stream.
	EventQueue events.Publisher
	// Routes holds the compiled regular expressions used when matching routes. See InitRegex method.
	Routes *StaticRx
	// UsersLruCache caches recently seen users so each request does not hit the
	// database just to resolve the caller. Up to 1000 users retained.
	UsersLruCache *ccache.Cache
}

// NewAppServer creates an AppServer.
func NewAppServer(conf config.ServerSettingsConfiguration, d dao.DAO, a auth.Authorization, mgr *share.Manager) *AppServer {

	usersLruCache := ccache.New(ccache.Configure().MaxSize(1000).ItemsToPrune(50))

	servicePrefix := conf.ServicePrefix
	if servicePrefix == "" {
		servicePrefix = config.RootURLRegex
	}

	app := AppServer{
		Port:          conf.ListenPort,
		Bind:          conf.ListenBind,
		Addr:          conf.ListenBind + ":" + conf.ListenPort,
		RootDAO:       d,
		Conf:          conf,
		ServicePrefix: servicePrefix,
		Auth:          a,
		Share:         mgr,
		EventQueue:    events.NullPublisher{},
		UsersLruCache: usersLruCache,
	}

	app.InitRegex()

	return &app
}

// InitRegex compiles static regexes and initializes the AppServer Routes field.
func (h *AppServer) InitRegex() {
	route := func(path string) *regexp.Regexp {
		return regexp.MustCompile(h.ServicePrefix + path)
	}
	h.Routes = &StaticRx{
		Ping: route("/ping$"),
		// - shares
		Shares:        route("/shares$"),
		SharesForType: route("/shares/(?P<dataType>[A-Za-z][0-9A-Za-z]*)$"),
		SharesForItem: route("/shares/(?P<dataType>[A-Za-z][0-9A-Za-z]*)/(?P<itemId>[0-9a-fA-F]{32})$"),
		// - groups
		Groups:        route("/groups$"),
		Group:         route("/groups/(?P<groupName>[^/]+)$"),
		GroupLeave:    route("/groups/(?P<groupName>[^/]+)/leave$"),
		GroupMembers:  route("/groups/(?P<groupName>[^/]+)/members$"),
		GroupMember:   route("/groups/(?P<groupName>[^/]+)/members/(?P<username>[^/]+)$"),
		GroupManager:  route("/groups/(?P<groupName>[^/]+)/manager/(?P<newManager>[^/]+)$"),
		SiteAdmin:     route("/siteadmin/(?P<newAdmin>[^/]+)$"),
		// - invites
		Invites:      route("/invites$"),
		InviteAccept: route("/invites/accept$"),
		// - lookups
		CompleteUser:  route("/complete/users/(?P<partial>[^/]+)$"),
		CompleteGroup: route("/complete/groups/(?P<partial>[^/]+)$"),
		Messages:      route("/messages$"),
		Users:         route("/users$"),
		UserLock:      route("/users/lock$"),
	}
}

// When there is a panic, all deferred functions get executed.
func logCrashInServeHTTP(logger *zap.Logger, w http.ResponseWriter) {
	if r := recover(); r != nil {
		logger.Error("claimshare crash", zap.Any("context", r), zap.String("stack", string(debug.Stack())))
		w.WriteHeader(http.StatusInternalServerError)
	}
}

// ServeHTTP handles the routing of requests
func (h AppServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	defer util.Time("ServeHTTP")()

	sessionID := newSessionID()
	w.Header().Add("sessionid", sessionID)

	caller := CallerFromRequest(r)
	logger := config.RootLogger.With(zap.String("session", sessionID))
	defer logCrashInServeHTTP(logger, w)

	ctx := context.Background()
	ctx = ContextWithLogger(ctx, logger)
	ctx = ContextWithCaller(ctx, caller)
	ctx = ContextWithSession(ctx, sessionID)
	ctx = ContextWithDAO(ctx, h.RootDAO)

	logger.Info(
		"transaction start",
		zap.String("username", caller.UserName),
		zap.String("cn", caller.CommonName),
		zap.String("method", r.Method),
		zap.String("uri", r.RequestURI),
	)

	var uri = r.URL.Path
	var herr *AppError

	// The following routes can be handled without a resolved caller
	switch {
	case r.Method == "GET" && h.Routes.Ping.MatchString(uri):
		jsonResponse(w, protocol.Success)
		countOKResponse(logger)
		return
	case r.Method == "POST" && h.Routes.InviteAccept.MatchString(uri):
		herr = h.acceptInvite(ctx, w, r)
		if herr != nil {
			sendAppErrorResponse(logger, &w, herr)
		} else {
			countOKResponse(logger)
		}
		return
	}

	if err := caller.ValidateHeaders(); err != nil {
		sendErrorResponse(logger, &w, 401, err, err.Error())
		return
	}

	user, err := h.FetchUser(ctx)
	if err != nil {
		sendErrorResponse(logger, &w, 500, err, "Error loading user")
		return
	}
	ctx = ContextWithUser(ctx, *user)

	switch r.Method {
	case "GET":
		switch {
		case h.Routes.SharesForItem.MatchString(uri):
			ctx = parseCaptureGroups(ctx, r.URL.Path, h.Routes.SharesForItem)
			herr = h.listShares(ctx, w, r)
		case h.Routes.SharesForType.MatchString(uri):
			ctx = parseCaptureGroups(ctx, r.URL.Path, h.Routes.SharesForType)
			herr = h.listShares(ctx, w, r)
		case h.Routes.GroupMembers.MatchString(uri):
			ctx = parseCaptureGroups(ctx, r.URL.Path, h.Routes.GroupMembers)
			herr = h.groupMembers(ctx, w, r)
		case h.Routes.CompleteUser.MatchString(uri):
			ctx = parseCaptureGroups(ctx, r.URL.Path, h.Routes.CompleteUser)
			herr = h.completeUsername(ctx, w, r)
		case h.Routes.CompleteGroup.MatchString(uri):
			ctx = parseCaptureGroups(ctx, r.URL.Path, h.Routes.CompleteGroup)
			herr = h.completeGroupName(ctx, w, r)
		case h.Routes.Messages.MatchString(uri):
			herr = h.listMessages(ctx, w, r)
		case h.Routes.Users.MatchString(uri):
			herr = h.listUsers(ctx, w, r)
		default:
			herr = do404(ctx, w, r)
		}

	case "POST":
		switch {
		case h.Routes.Shares.MatchString(uri):
			herr = h.addShare(ctx, w, r)
		case h.Routes.Groups.MatchString(uri):
			herr = h.createGroup(ctx, w, r)
		case h.Routes.GroupLeave.MatchString(uri):
			ctx = parseCaptureGroups(ctx, r.URL.Path, h.Routes.GroupLeave)
			herr = h.leaveGroup(ctx, w, r)
		case h.Routes.GroupMembers.MatchString(uri):
			ctx = parseCaptureGroups(ctx, r.URL.Path, h.Routes.GroupMembers)
			herr = h.addGroupMember(ctx, w, r)
		case h.Routes.GroupManager.MatchString(uri):
			ctx = parseCaptureGroups(ctx, r.URL.Path, h.Routes.GroupManager)
			herr = h.transferManager(ctx, w, r)
		case h.Routes.SiteAdmin.MatchString(uri):
			ctx = parseCaptureGroups(ctx, r.URL.Path, h.Routes.SiteAdmin)
			herr = h.transferSiteAdmin(ctx, w, r)
		case h.Routes.Invites.MatchString(uri):
			herr = h.inviteUserToGroup(ctx, w, r)
		case h.Routes.UserLock.MatchString(uri):
			herr = h.lockUser(ctx, w, r)
		default:
			herr = do404(ctx, w, r)
		}

	case "DELETE":
		switch {
		case h.Routes.Shares.MatchString(uri):
			herr = h.removeShare(ctx, w, r)
		case h.Routes.GroupMember.MatchString(uri):
			ctx = parseCaptureGroups(ctx, r.URL.Path, h.Routes.GroupMember)
			herr = h.removeGroupMember(ctx, w, r)
		case h.Routes.Group.MatchString(uri):
			ctx = parseCaptureGroups(ctx, r.URL.Path, h.Routes.Group)
			herr = h.removeGroup(ctx, w, r)
		default:
			herr = do404(ctx, w, r)
		}
	default:
		herr = do404(ctx, w, r)
	}

	if herr != nil {
		sendAppErrorResponse(logger, &w, herr)
	} else {
		countOKResponse(logger)
	}
}

func newSessionID() string {
	return config.RandomID()
}

// ContextWithSession puts the sessionID on the context, used for log correlation
func ContextWithSession(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, SessionID, sessionID)
}

// ContextWithCaller returns a new Context object with a Caller value set. The const CallerVal acts
// as the key that maps to the caller value.
func ContextWithCaller(ctx context.Context, caller Caller) context.Context {
	return context.WithValue(ctx, CallerVal, caller)
}

// ContextWithDAO puts the DAO on the context so that SQL can be correlated
func ContextWithDAO(ctx context.Context, d dao.DAO) context.Context {
	return context.WithValue(ctx, DAO, d)
}

// DAOFromContext returns the DAO associated with the context
func DAOFromContext(ctx context.Context) dao.DAO {
	d, ok := ctx.Value(DAO).(dao.DAO)
	if !ok {
		LoggerFromContext(ctx).Error("cannot get dao from context")
	}
	return d
}

// CallerFromContext extracts a Caller from a context, if set.
func CallerFromContext(ctx context.Context) (Caller, bool) {
	caller, ok := ctx.Value(CallerVal).(Caller)
	return caller, ok
}

// ContextWithLogger puts the logger on the context
func ContextWithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, Logger, logger)
}

// LoggerFromContext gets a zap logger from our context
func LoggerFromContext(ctx context.Context) *zap.Logger {
	logger, ok := ctx.Value(Logger).(*zap.Logger)
	if !ok {
		return config.RootLogger
	}
	return logger
}

// SessionIDFromContext extracts the session id from the context
func SessionIDFromContext(ctx context.Context) string {
	sessionID, ok := ctx.Value(SessionID).(string)
	if !ok {
		return "unknown"
	}
	return sessionID
}

func parseCaptureGroups(ctx context.Context, path string, regex *regexp.Regexp) context.Context {
	captured := util.GetRegexCaptureGroups(path, regex)
	return context.WithValue(ctx, CaptureGroupsVal, captured)
}

// CaptureGroupsFromContext extracts the capture groups from a context, if set
func CaptureGroupsFromContext(ctx context.Context) (map[string]string, bool) {
	captured, ok := ctx.Value(CaptureGroupsVal).(map[string]string)
	return captured, ok
}

// ContextWithUser puts the user object on the context and returns the modified context
func ContextWithUser(ctx context.Context, user models.User) context.Context {
	return context.WithValue(ctx, UserVal, user)
}

// UserFromContext extracts the user from a context, if set
func UserFromContext(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(UserVal).(models.User)
	return user, ok
}

func do404(ctx context.Context, w http.ResponseWriter, r *http.Request) *AppError {
	caller, ok := CallerFromContext(ctx)
	if !ok {
		caller = Caller{UserName: "UnknownUser"}
	}
	uri := r.URL.Path
	msg := caller.UserName + " from address " + r.RemoteAddr + " using " + r.UserAgent() + " unhandled operation " + r.Method + " " + uri
	return NewAppError(404, nil, fmt.Sprintf("Resource not found %s", msg))
}

// jsonResponse writes a response, and should be called for all HTTP handlers that return JSON.
func jsonResponse(w http.ResponseWriter, i interface{}) {
	w.Header().Set("Content-Type", "application/json")
	jsonData, _ := json.MarshalIndent(i, "", "  ")
	w.Write(jsonData)
}

// StaticRx statically references compiled regular expressions.
type StaticRx struct {
	Ping          *regexp.Regexp
	Shares        *regexp.Regexp
	SharesForType *regexp.Regexp
	SharesForItem *regexp.Regexp
	Groups        *regexp.Regexp
	Group         *regexp.Regexp
	GroupLeave    *regexp.Regexp
	GroupMembers  *regexp.Regexp
	GroupMember   *regexp.Regexp
	GroupManager  *regexp.Regexp
	SiteAdmin     *regexp.Regexp
	Invites       *regexp.Regexp
	InviteAccept  *regexp.Regexp
	CompleteUser  *regexp.Regexp
	CompleteGroup *regexp.Regexp
	Messages      *regexp.Regexp
	Users         *regexp.Regexp
	UserLock      *regexp.Regexp
}
