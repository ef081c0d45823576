package ai

import "strings"

const demoModel = "demo-mode"

// simulateResponse produces a deterministic French answer from the request
// alone. The system message carries the intent, the last user message drives
// the conversational branches.
func simulateResponse(messages []Message) *Response {
	var systemMsg, lastMsg string
	if len(messages) > 0 {
		systemMsg = strings.ToLower(messages[0].Content)
		lastMsg = strings.ToLower(messages[len(messages)-1].Content)
	}

	if strings.Contains(systemMsg, "résumé") || strings.Contains(systemMsg, "summarize") {
		return &Response{
			Content: "**Résumé du document**\n\nCe document traite des principaux points suivants :\n\n1. **Contexte** — Présentation du cadre général et des objectifs\n2. **Analyse** — Étude détaillée des données et indicateurs clés\n3. **Recommandations** — Actions proposées pour améliorer les résultats\n4. **Conclusion** — Synthèse et prochaines étapes\n\n> *Note : Ceci est un résumé généré en mode démo. Configurez votre clé OpenAI pour des résumés réels.*",
			Model:   demoModel,
		}
	}

	if strings.Contains(systemMsg, "catégor") || strings.Contains(systemMsg, "categorize") {
		return &Response{
			Content: `{"category": "Rapports", "confidence": 0.85, "alternatives": ["Contrats", "Juridique"]}`,
			Model:   demoModel,
		}
	}

	if strings.Contains(systemMsg, "tags") || strings.Contains(systemMsg, "extract") {
		return &Response{
			Content: `{"tags": ["finance", "annuel", "rapport", "2025", "budget"], "confidence": 0.9}`,
			Model:   demoModel,
		}
	}

	if strings.Contains(lastMsg, "bonjour") || strings.Contains(lastMsg, "salut") || strings.Contains(lastMsg, "hello") {
		return &Response{
			Content: "Bonjour ! Je suis l'assistant IA d'Archivist. Je peux vous aider à :\n\n- **Résumer** vos documents\n- **Rechercher** des informations spécifiques\n- **Catégoriser** automatiquement vos fichiers\n- **Extraire** les mots-clés importants\n\nComment puis-je vous aider ?",
			Model:   demoModel,
		}
	}

	if strings.Contains(lastMsg, "résumé") || strings.Contains(lastMsg, "résumer") || strings.Contains(lastMsg, "summary") {
		return &Response{
			Content: "Pour résumer un document, rendez-vous sur la page du document et cliquez sur le bouton **« Résumer avec l'IA »**. Je générerai automatiquement un résumé structuré.\n\nVous pouvez aussi me donner le contenu ici et je le résumerai pour vous.",
			Model:   demoModel,
		}
	}

	if strings.Contains(lastMsg, "cherch") || strings.Contains(lastMsg, "recherch") || strings.Contains(lastMsg, "trouv") {
		return &Response{
			Content: "Je peux vous aider à rechercher des documents. Décrivez-moi ce que vous cherchez en langage naturel, par exemple :\n\n- *\"Les factures de mars 2025\"*\n- *\"Le contrat avec le fournisseur X\"*\n- *\"Les rapports financiers du dernier trimestre\"*\n\nJe reformulerai votre requête pour des résultats optimaux.",
			Model:   demoModel,
		}
	}

	return &Response{
		Content: "Je suis l'assistant IA d'Archivist. En mode démo, mes réponses sont simulées. Configurez la variable `OPENAI_API_KEY` pour activer les réponses réelles.\n\nJe peux vous aider avec :\n- 📄 **Résumés** de documents\n- 🏷️ **Catégorisation** automatique\n- 🔍 **Recherche** intelligente\n- 💡 **Suggestions** d'organisation\n\nPosez-moi votre question !",
		Model:   demoModel,
	}
}
