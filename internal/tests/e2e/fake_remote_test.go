package e2e

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// fakeRemote is an in-process stand-in for the hosted backend. It
// implements the account/session endpoints and the document endpoints
// the client talks to, with real password hashing and signed session
// secrets so the tests exercise the same wire shapes as production.
type fakeRemote struct {
	mu        sync.Mutex
	accounts  map[string]*fakeAccount          // keyed by email
	documents map[string]map[string]fakeDoc    // collection -> document ID -> doc
	jwtSecret []byte
}

type fakeAccount struct {
	ID           string
	Email        string
	Name         string
	PasswordHash []byte
}

type fakeDoc map[string]any

func newFakeRemote() *fakeRemote {
	return &fakeRemote{
		accounts:  make(map[string]*fakeAccount),
		documents: make(map[string]map[string]fakeDoc),
		jwtSecret: []byte("e2e-session-signing-secret"),
	}
}

func (f *fakeRemote) start() *httptest.Server {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	r.POST("/account", f.createAccount)
	r.POST("/account/sessions/email", f.createSession)
	r.GET("/account", f.getAccount)
	r.DELETE("/account/sessions/current", f.deleteSession)

	docs := r.Group("/databases/:db/collections/:col/documents")
	docs.GET("", f.listDocuments)
	docs.POST("", f.createDocument)
	docs.GET("/:id", f.getDocument)
	docs.PATCH("/:id", f.updateDocument)
	docs.DELETE("/:id", f.deleteDocument)

	return httptest.NewServer(r)
}

func remoteError(c *gin.Context, code int, message, errType string) {
	c.JSON(code, gin.H{"message": message, "code": code, "type": errType})
}

// authedAccount resolves the session header to an account, or replies
// with the backend's guest-scope error.
func (f *fakeRemote) authedAccount(c *gin.Context) (*fakeAccount, bool) {
	secret := c.GetHeader("X-Appwrite-Session")
	if secret == "" {
		remoteError(c, http.StatusUnauthorized, "User (role: guests) missing scope (account)", "general_unauthorized_scope")
		return nil, false
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(secret, claims, func(t *jwt.Token) (any, error) {
		return f.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		remoteError(c, http.StatusUnauthorized, "User (role: guests) missing scope (account)", "general_unauthorized_scope")
		return nil, false
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for _, acct := range f.accounts {
		if acct.ID == claims.Subject {
			return acct, true
		}
	}
	remoteError(c, http.StatusUnauthorized, "User (role: guests) missing scope (account)", "general_unauthorized_scope")
	return nil, false
}

func (f *fakeRemote) createAccount(c *gin.Context) {
	var req struct {
		UserID   string `json:"userId"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		remoteError(c, http.StatusBadRequest, "Invalid request body", "general_argument_invalid")
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.accounts[req.Email]; exists {
		remoteError(c, http.StatusConflict, "A user with the same id, email, or phone already exists in this project.", "user_already_exists")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.MinCost)
	if err != nil {
		remoteError(c, http.StatusInternalServerError, "hash failure", "general_server_error")
		return
	}
	f.accounts[req.Email] = &fakeAccount{
		ID:           req.UserID,
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: hash,
	}

	c.JSON(http.StatusCreated, gin.H{"$id": req.UserID, "email": req.Email, "name": req.Name})
}

func (f *fakeRemote) createSession(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		remoteError(c, http.StatusBadRequest, "Invalid request body", "general_argument_invalid")
		return
	}

	f.mu.Lock()
	acct, ok := f.accounts[req.Email]
	f.mu.Unlock()
	if !ok || bcrypt.CompareHashAndPassword(acct.PasswordHash, []byte(req.Password)) != nil {
		remoteError(c, http.StatusUnauthorized, "Invalid credentials. Please check the email and password.", "user_invalid_credentials")
		return
	}

	claims := jwt.RegisteredClaims{
		Subject:   acct.ID,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	secret, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(f.jwtSecret)
	if err != nil {
		remoteError(c, http.StatusInternalServerError, "sign failure", "general_server_error")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"$id": "sess_" + acct.ID, "userId": acct.ID, "secret": secret})
}

func (f *fakeRemote) getAccount(c *gin.Context) {
	acct, ok := f.authedAccount(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"$id": acct.ID, "email": acct.Email, "name": acct.Name})
}

func (f *fakeRemote) deleteSession(c *gin.Context) {
	if _, ok := f.authedAccount(c); !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

func (f *fakeRemote) collection(col string) map[string]fakeDoc {
	if f.documents[col] == nil {
		f.documents[col] = make(map[string]fakeDoc)
	}
	return f.documents[col]
}

func docPayload(id string, doc fakeDoc) gin.H {
	out := gin.H{"$id": id, "$createdAt": "2026-01-01T00:00:00.000+00:00"}
	for k, v := range doc {
		out[k] = v
	}
	return out
}

var equalQueryRe = regexp.MustCompile(`^equal\("([^"]+)", \["([^"]*)"\]\)$`)

func (f *fakeRemote) listDocuments(c *gin.Context) {
	field, value := "", ""
	for _, q := range c.QueryArray("queries[]") {
		if m := equalQueryRe.FindStringSubmatch(q); m != nil {
			field, value = m[1], m[2]
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	docs := make([]gin.H, 0)
	for id, doc := range f.collection(c.Param("col")) {
		if field != "" {
			fv, _ := doc[field].(string)
			if fv != value {
				continue
			}
		}
		docs = append(docs, docPayload(id, doc))
	}
	c.JSON(http.StatusOK, gin.H{"total": len(docs), "documents": docs})
}

func (f *fakeRemote) createDocument(c *gin.Context) {
	var req struct {
		DocumentID string         `json:"documentId"`
		Data       map[string]any `json:"data"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.DocumentID == "" {
		remoteError(c, http.StatusBadRequest, "Invalid document structure", "general_argument_invalid")
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	col := f.collection(c.Param("col"))
	if _, exists := col[req.DocumentID]; exists {
		remoteError(c, http.StatusConflict, "Document with the requested ID already exists.", "document_already_exists")
		return
	}
	col[req.DocumentID] = fakeDoc(req.Data)
	c.JSON(http.StatusCreated, docPayload(req.DocumentID, col[req.DocumentID]))
}

func (f *fakeRemote) getDocument(c *gin.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, ok := f.collection(c.Param("col"))[c.Param("id")]
	if !ok {
		remoteError(c, http.StatusNotFound, "Document with the requested ID could not be found.", "document_not_found")
		return
	}
	c.JSON(http.StatusOK, docPayload(c.Param("id"), doc))
}

func (f *fakeRemote) updateDocument(c *gin.Context) {
	var req struct {
		Data map[string]any `json:"data"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		remoteError(c, http.StatusBadRequest, "Invalid document structure", "general_argument_invalid")
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	doc, ok := f.collection(c.Param("col"))[c.Param("id")]
	if !ok {
		remoteError(c, http.StatusNotFound, "Document with the requested ID could not be found.", "document_not_found")
		return
	}
	for k, v := range req.Data {
		doc[k] = v
	}
	c.JSON(http.StatusOK, docPayload(c.Param("id"), doc))
}

func (f *fakeRemote) deleteDocument(c *gin.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	col := f.collection(c.Param("col"))
	if _, ok := col[c.Param("id")]; !ok {
		remoteError(c, http.StatusNotFound, "Document with the requested ID could not be found.", "document_not_found")
		return
	}
	delete(col, c.Param("id"))
	c.Status(http.StatusNoContent)
}

// documentCount reports how many documents a collection holds, for
// assertions on the remote side of a flow.
func (f *fakeRemote) documentCount(col string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.collection(col))
}

// findDocumentByField returns the first document whose string field
// matches value, for assertions on the remote side of a flow.
func (f *fakeRemote) findDocumentByField(col, field, value string) (fakeDoc, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, doc := range f.collection(col) {
		fv, _ := doc[field].(string)
		if strings.EqualFold(fv, value) {
			return doc, true
		}
	}
	return nil, false
}
