// Package tips rotates short hints about agenda commands on the dashboard.
package tips

import "time"

var all = []string{
	"`agenda day set manha 7:30 Caminhada` para ocupar um horário da manhã.",
	"`agenda day set tarde 2 Leitura` grava às 14:00: de 1 a 5 são horários da tarde.",
	"`agenda day --links` mostra um link do Google Calendar em cada horário.",
	"`agenda link --all` gera links de agenda para todos os horários do dia.",
	"`agenda export ics --week -o semana.ics` leva a semana inteira para o seu calendário.",
	"`agenda export pdf` imprime a página do dia em A4.",
	"`agenda day answer daily_energy ...` responde o ritual da manhã.",
	"`agenda day questions` lista as perguntas do ritual e da reflexão.",
	"`agenda plan week set pillars ...` define os três pilares da semana.",
	"`agenda plan month project ...` registra um grande projeto do mês.",
	"`agenda plan vision goal 1y ...` anota uma meta para o próximo ano.",
	"`agenda meditate` lista as meditações guiadas.",
	"`agenda streak` mostra a sequência de dias escritos.",
	"`agenda backup create` salva tudo num arquivo criptografado.",
	"`agenda serve` expõe o diário numa API JSON local.",
	"`agenda config set calendar.timezone America/Sao_Paulo` acerta o fuso dos eventos.",
}

// All returns every tip.
func All() []string {
	return all
}

// Daily returns the tip of t's day. It changes once a day.
func Daily(t time.Time) string {
	return all[t.YearDay()%len(all)]
}
