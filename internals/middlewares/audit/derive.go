// internals/middlewares/audit/derive.go
package audit

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
)

const redactionMarker = "[REDACTED]"

// verb per method — GET /api/a/families/:id → "view family"
var methodVerbs = map[string]string{
	"GET":    "view",
	"POST":   "create",
	"PUT":    "update",
	"PATCH":  "update",
	"DELETE": "delete",
}

// sinonim segment path → nama entity; segment yang tidak terdaftar dipakai
// apa adanya
var entitySynonyms = map[string]string{
	"families":      "family",
	"members":       "member",
	"users":         "user",
	"tenants":       "tenant",
	"payments":      "payment",
	"activity-logs": "activity_log",
	"auth":          "auth",
}

// route group satu huruf (a=admin, u=user, s=super) yang diloncati saat
// mencari segment entity
var groupPrefixes = map[string]struct{}{
	"a": {}, "u": {}, "s": {}, "public": {},
}

// field body yang selalu disanitasi (case-insensitive)
var sensitiveFields = map[string]struct{}{
	"password":      {},
	"token":         {},
	"secret":        {},
	"apikey":        {},
	"authorization": {},
}

// DeriveAction menghasilkan "<verb> <entity>" dari method + path.
func DeriveAction(method, path string) (action, entity string) {
	verb, ok := methodVerbs[strings.ToUpper(method)]
	if !ok {
		verb = strings.ToLower(method)
	}
	entity = DeriveEntity(path)
	if entity == "" {
		return verb, ""
	}
	return verb + " " + entity, entity
}

// DeriveEntity mengambil segment entity pertama setelah prefix /api
// (+ group satu huruf kalau ada), lalu lewat tabel sinonim.
func DeriveEntity(path string) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	i := 0
	if i < len(segments) && segments[i] == "api" {
		i++
	}
	if i < len(segments) {
		if _, ok := groupPrefixes[segments[i]]; ok {
			i++
		}
	}
	if i >= len(segments) || segments[i] == "" {
		return ""
	}
	seg := strings.ToLower(segments[i])
	if mapped, ok := entitySynonyms[seg]; ok {
		return mapped
	}
	return seg
}

// SanitizeBody mengganti field sensitif (rekursif) dengan marker dan
// mengembalikan body hasil + daftar nama field yang diganti.
// Body kosong / bukan JSON object → nil (tidak disimpan).
func SanitizeBody(raw []byte) ([]byte, []string) {
	if len(raw) == 0 {
		return nil, nil
	}
	var body map[string]interface{}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, nil
	}

	var redacted []string
	sanitizeMap(body, &redacted)

	out, err := json.Marshal(body)
	if err != nil {
		return nil, nil
	}
	return out, redacted
}

func sanitizeMap(m map[string]interface{}, redacted *[]string) {
	for k, v := range m {
		if _, sensitive := sensitiveFields[strings.ToLower(k)]; sensitive {
			m[k] = redactionMarker
			*redacted = append(*redacted, k)
			continue
		}
		if nested, ok := v.(map[string]interface{}); ok {
			sanitizeMap(nested, redacted)
		}
	}
}

// SummarizeOutcome merangkum response tanpa menyimpan payload:
// error → status + message; sukses → list count atau kehadiran objek.
func SummarizeOutcome(statusCode int, responseBody []byte) []byte {
	summary := map[string]interface{}{}

	var envelope struct {
		Success *bool           `json:"success"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	parsed := json.Unmarshal(responseBody, &envelope) == nil

	if statusCode >= 400 {
		summary["status"] = statusCode
		if parsed && envelope.Message != "" {
			summary["message"] = envelope.Message
		}
	} else {
		summary["status"] = statusCode
		if parsed && len(envelope.Data) > 0 {
			trimmed := strings.TrimSpace(string(envelope.Data))
			switch {
			case strings.HasPrefix(trimmed, "["):
				var list []json.RawMessage
				if json.Unmarshal(envelope.Data, &list) == nil {
					summary["list_count"] = len(list)
				}
			case trimmed != "null":
				summary["object"] = true
			}
		}
	}

	out, err := json.Marshal(summary)
	if err != nil {
		return nil
	}
	return out
}

// ParseEntityID membaca id dari path param, fallback ke body _id/id.
// Id yang bukan uuid dibuang, bukan error.
func ParseEntityID(pathParam string, body []byte) *uuid.UUID {
	if pathParam != "" {
		if id, err := uuid.Parse(pathParam); err == nil {
			return &id
		}
	}
	if len(body) > 0 {
		var probe struct {
			MongoID string `json:"_id"`
			ID      string `json:"id"`
		}
		if json.Unmarshal(body, &probe) == nil {
			if id, err := uuid.Parse(probe.MongoID); err == nil {
				return &id
			}
			if id, err := uuid.Parse(probe.ID); err == nil {
				return &id
			}
		}
	}
	return nil
}

// CallerIP: forwarded-for pertama → real-ip → alamat socket → "unknown".
func CallerIP(forwardedFor, realIP, remoteAddr string) string {
	if forwardedFor != "" {
		first := strings.TrimSpace(strings.Split(forwardedFor, ",")[0])
		if first != "" {
			return first
		}
	}
	if realIP != "" {
		return realIP
	}
	if remoteAddr != "" {
		return remoteAddr
	}
	return "unknown"
}
