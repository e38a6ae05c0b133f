// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package opensearch

const queryRecipeSource = `{
  "from": {{ .From }},
  "size": {{ .Size }},
  "track_total_hits": true,
  "query": {
    {{- if .Ingredients }}
    "terms_set": {
      "ingredients": {
        "terms": [
          {{- range $i, $ingredient := .Ingredients }}
          {{- if $i }},{{ end }}
          {{ $ingredient | quote }}
          {{- end }}
        ],
        "minimum_should_match_script": {
          "source": "doc['ingredients'].size()"
        }
      }
    }
    {{- else if .Keyword }}
    "multi_match": {
      "query": {{ .Keyword | quote }},
      "type": "bool_prefix",
      "fields": [
        "title",
        "title._2gram",
        "title._3gram"
      ]
    }
    {{- else }}
    "match_all": {}
    {{- end }}
  },
  "sort": [
    {"timesFavorite": {"order": "desc"}},
    {"_id": "asc"}
  ]
}`

const queryInventorySource = `{
  "size": 1,
  "query": {
    "ids": {
      "values": [{{ .Subject | quote }}]
    }
  }
}`

const readinessQuery = `{"size": 0, "query": {"match_all": {}}}`
