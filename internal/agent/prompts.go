package agent

// Disclaimer is appended exactly once to every outgoing reply, whatever path
// produced it.
const Disclaimer = "Los valores y la disponibilidad publicados son referenciales y pueden variar. Te recomendamos confirmar los detalles con uno de nuestros asesores."

// NoDataReply is the fixed answer when the catalog has nothing to show.
// Policy: never invent projects; redirect to a human instead.
const NoDataReply = "Por ahora no tengo proyectos que coincidan con lo que buscas. Escríbenos por WhatsApp y uno de nuestros asesores te ayudará a encontrar alternativas."

// HandoffReply is the fixed answer when the user asks for a human.
const HandoffReply = "¡Perfecto! Uno de nuestros asesores puede atenderte de inmediato. Escríbenos por WhatsApp y coordinamos todo contigo."

// ChatLogSource labels agent turns in the chat log.
const ChatLogSource = "web-agent"

// systemPrompt constrains the model to the curated catalog context.
const systemPrompt = `Eres el asistente virtual de un portal inmobiliario chileno. Respondes en español, de forma breve y cordial.

Reglas estrictas:
- Responde SOLO con la información de los proyectos listados en el contexto. No inventes proyectos, precios, direcciones ni plazos.
- Si un dato aparece como "Dato no disponible", dilo tal cual; no lo completes.
- Los precios están en UF. Mantén el formato entregado.
- Si el usuario pide algo que no está en el contexto, indícale que un asesor puede ayudarlo por WhatsApp.
- Incluye el link de cada proyecto que menciones.

Contexto de proyectos disponibles:

`
