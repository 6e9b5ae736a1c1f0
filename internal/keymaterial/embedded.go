package keymaterial

// DefaultBlob is the shipped key source: a 2048-bit <RSAKeyValue> document
// masked with obfuscation.DefaultMask and base64-encoded.
//
// To rotate it, build a new blob with `keyblob blob obfuscate --in <key>` and
// either replace this value or set key_source.blob in the config file.
const DefaultBlob = "" +
	"bwEAEhg2KgUyPyY2bW8ePDcmPyYgbWArNyoVPxw+C2MZIBoCPmUjESMfZRQ5YisiKTU4AGMXBDkr" +
	"OTgAGyIbZjliZTwVHhI5NhAcfAEZAgQdA2UYCxw5IhQGC2EKAD8DZCs8Bx8pF2Y+Gz0RGWcqKmIw" +
	"JxcDFipnGBEwORkjHQUHJTcLJDsSIx8iMAV8GzIHeCAYPmYKICVmZCR4ACQgPAdmBwFhFGQyAikZ" +
	"AhIkYBoaIQp4NWMBYhYXHjIrNGsCPSU/J2YaPT8DI2scZjcGKhpjKmUqNGchGxgCB2pgGGQdEmcr" +
	"GB0pGRwFaxskfAEpETsVeCRmK2QLNCoJPRk+ATEZMAkZKmAmYDRmCR0wHRkpGyQ8A2YCKyMdOAMF" +
	"CxIgCTwQAj4RYgIBCzAeZxQ2MhYAFCckJTw1MQsFN2obAxs+OBR8PWA6ByYVFAkHHBBiORA6ND4x" +
	"YCc2MGscJDphFDsiYxcbMjwSOGIEAm5ub3wePDcmPyYgbW8WKyM8PTY9J20SAhIRb3wWKyM8PTY9" +
	"J21vA214JiopBjEWPBkrEAk1fCAxP2MeZjRjIGsxOhBmOj0dPik9BDAhFjg4Nhs7ahY+GykCAR8c" +
	"AxQACxkpJmsqeDYRFQFqHD03KWMgBT0RFAdkYDwDF2I1HwE6ETApPRwbYwAROTU+AjUqYhgSNRh4" +
	"ACJnFBw0ASN4PSBrFAtlARk2OhckIGYLEgkgGSQHOwlhJxYdKQcHCQQSNjwFMR0iFRQwKjtmJWsb" +
	"YGtqYyBub3wDbW8CbWdmIjVgFXgUHzEbEDAXC2EWfDxmNDcRARIJZCspJ2MKNxw9PTUnMisKFh1l" +
	"BQQVYGAYAQoyFh8kYQs0KQJlFBRrJxkrB2USYzBiBB83NWQHGz8UImA8OSUBOmEAEjo2ZgEpEGo2" +
	"FjQ0NCNnMTlrO2IROTs+MBA/PD1mMCQ7ZSICBBsEJmYwNx8/eBlhahQKHDYJAQsZESs2awkDNgdq" +
	"NmAdAzYQPSsFOGVhIG5vfAJtbxcDbRQfNTw4OCYJCgN8GT1jPT8FNj8BMgEEPAE/FhBqOzoKHhJm" +
	"YngYHzFkHBorIXwLPhwYIQk/Oj8qPj0fAhc+Cj1hAAcGCjA6ZTA7ZzcLZjceCwkJNRQaGx47OQsR" +
	"HgU3NCsqJBg6IAQAHiU3ATlhPDdlGQopZiRlIAIYGR8bADIqYRc6GGI1YCF4CiQZOhVlAiQxamUw" +
	"ZTwwBD87IiY0GgIZfDgbPTUVHwY5Fm5vfBcDbW8XAm0UFDsKOxUFIhQ5AQlhCTIlYxwqNDs7ahZj" +
	"GSYmZSECORdjMgQaGHxqBwo/JmsCFhQpCmUQAxokAR4SFhtgPwcCFXwaOwsZKjc0YhcVGWpnJWAy" +
	"K2sEPjkgYHgEZBkiNBdnPRgXPSQJahU0BxQ7eBcXAHgnZzAeMRIRC2NqGiRqBzBhOB8LGxcUYj1k" +
	"NiIgZARqPCEVYAoFagQCGGEwGxVqPBErZWMLKhVhNDhub3wXAm1vGj0lNiEgNgJtCQcaJCMZIgoL" +
	"awYdBDkDPwceMDBlFRAmIWUHEWMyZCoCBDYQADQRIB4QEB9kGydrGzFhBCcKJCY2NXhqaiN4CyY6" +
	"BTs4eB0bax0WPwYpYikmY2NnYmVkADo7OgVqPSF4YBFqCxZkNDUmYiAFMDcXP2syCxUWOiopFTpi" +
	"NxsFZDkSATAQERgJBT45IQU5GgcXCmtnKSEwMRUlHzRjJRomPAIhIgsfMSsLOWUWbm98Gj0lNiEg" +
	"NgJtbxdtPyQrB2IyAjE4GhspPTgxJxUDFicVOwoQYSchJTwUMXgpKzlhAwApNgcHOhwkGRVrJjl4" +
	"FR4HKR4KHwkqAmNnGgU1EmF4PAAgZDpkByQFCipiNCQKOD4yZAsYYBERa2AZChEFOSYwHRAWITAa" +
	"BydlBSMrYmsUAz8VPzsROTEbHmsaAGIUagcYOxkYYGprNgQ3FSA1GwcHBjBnEBEcMiNhETYgJSoC" +
	"ImVmFhU/ImFrERwKByYeOWAHMmUEMgcXFwoxHhcUEhA7ZwYDAzYnPQQJGTkpChYjOCYDNxImMnwQ" +
	"PiEdZjdnFiMfATsefBphNzUxHgoSZxIlAzEWA2QANRQpH2sZBwEcYTYyeAUfIBBjfHgFZAIAOBQg" +
	"eAEGJmUJKjs1fCcFCWQ4O2slYCN4GgQrBwEfJBhqHzIAORkXATA+IwsWKSMnMAF8fBE9YDwVIT4U" +
	"EjUZFjcCbm5vfBdtb3wBABIYNioFMj8mNm0="
